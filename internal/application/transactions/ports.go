package transactions

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MaxRetry acota los reintentos de una transacción de movimiento ante
// ErrVersionConflict o ErrCodeCollision. Agotado el límite se devuelve
// ErrConflictExhausted.
const MaxRetry = 5

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada intento de un movimiento es una
// transacción nueva: el código asignado, la mutación de stock y el insert
// del registro se confirman o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inRepo repository.TransactionInRepository,
		outRepo repository.TransactionOutRepository,
		stockRepo repository.StockRepository,
	) error) error
}
