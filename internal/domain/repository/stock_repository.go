package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository es el puerto de persistencia del contador de stock.
// Solo el StockLedger debe invocar UpsertAdd/DecrementGuarded; el resto del
// código consume únicamente las lecturas.
type StockRepository interface {
	// Get devuelve la fila (producto, bodega). Fila ausente se devuelve como
	// registro en cero (QtyOnHand = 0, Version = 0), nunca nil.
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error)
	// UpsertAdd inserta la fila con qty_on_hand = qty y version = 1, o suma
	// qty e incrementa version en 1 si ya existe. Atómico en el motor.
	UpsertAdd(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error
	// DecrementGuarded ejecuta el update condicional
	// WHERE version = version AND qty_on_hand >= qty y reporta si afectó
	// alguna fila. false = otra transacción ganó la carrera.
	DecrementGuarded(ctx context.Context, productID, warehouseID string, qty decimal.Decimal, version int64) (bool, error)
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockRecord, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error)
}
