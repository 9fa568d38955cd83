package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockLedger es el único actor autorizado a mutar qty_on_hand/version.
// Toda mutación pasa por el update condicional guardado por versión o por el
// upsert de incremento; nunca por un write ciego. Los casos de uso lo
// construyen sobre el StockRepository atado a la transacción en curso.
type StockLedger struct {
	stocks repository.StockRepository
}

// NewStockLedger construye el ledger sobre un repositorio (pool o tx).
func NewStockLedger(stocks repository.StockRepository) *StockLedger {
	return &StockLedger{stocks: stocks}
}

// Increment suma qty al contador (producto, bodega). Si la fila no existe la
// crea con qty_on_hand = qty y version = 1; si existe, suma y sube la versión.
// Nunca falla por regla de negocio: las entradas no compiten por suficiencia.
func (l *StockLedger) Increment(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if err := l.stocks.UpsertAdd(ctx, productID, warehouseID, qty); err != nil {
		return fmt.Errorf("incrementar stock: %w", err)
	}
	return nil
}

// DecrementIfSufficient lee {qty_on_hand, version} (fila ausente se lee como
// {0, 0}), falla con InsufficientStockError si no alcanza y, si alcanza,
// ejecuta el update condicional WHERE version = observada AND qty_on_hand >= qty.
// Cero filas afectadas significa que otra transacción ganó la carrera:
// se devuelve ErrVersionConflict y el caso de uso debe reintentar la
// transacción completa (el código asignado y el insert dependen de una
// lectura consistente, no basta con repetir esta llamada).
func (l *StockLedger) DecrementIfSufficient(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	rec, err := l.stocks.Get(ctx, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("leer stock: %w", err)
	}
	if rec.QtyOnHand.LessThan(qty) {
		return &domain.InsufficientStockError{Available: rec.QtyOnHand, Requested: qty}
	}
	ok, err := l.stocks.DecrementGuarded(ctx, productID, warehouseID, qty, rec.Version)
	if err != nil {
		return fmt.Errorf("decrementar stock: %w", err)
	}
	if !ok {
		return domain.ErrVersionConflict
	}
	return nil
}

// Restore devuelve qty al contador al borrar una salida. Mismo upsert que
// Increment: incondicional y con incremento de versión.
func (l *StockLedger) Restore(ctx context.Context, productID, warehouseID string, qty decimal.Decimal) error {
	return l.Increment(ctx, productID, warehouseID, qty)
}
