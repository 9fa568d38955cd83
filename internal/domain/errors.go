package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrDuplicateInvoice  = errors.New("la factura ya está registrada")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrEmailTaken        = errors.New("el email ya está registrado")

	// ErrVersionConflict indica que otro proceso ganó la carrera sobre la fila
	// de stock (el update condicional afectó cero filas). Es una señal interna:
	// el caso de uso la convierte en reintento y nunca cruza la capa HTTP.
	ErrVersionConflict = errors.New("conflicto de versión en stock")

	// ErrCodeCollision indica que el código secuencial asignado (TR-n, PART-n, ...)
	// chocó con el constraint único al insertar. Señal interna de reintento.
	ErrCodeCollision = errors.New("colisión de código secuencial")

	// ErrConflictExhausted: se agotaron los reintentos sin lograr un commit limpio.
	// A diferencia de ErrInsufficientStock, el cliente puede reenviar la petición.
	ErrConflictExhausted = errors.New("demasiados conflictos de concurrencia, reintente")
)

// InsufficientStockError lleva la cantidad disponible y la solicitada para que
// el mensaje reporte ambas. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: hay %s, se pidió %s", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
