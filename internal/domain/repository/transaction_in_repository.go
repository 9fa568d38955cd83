package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionInRepository puerto de persistencia de entradas de mercancía.
type TransactionInRepository interface {
	// Create inserta la entrada. Una violación del constraint único del código
	// se traduce a domain.ErrCodeCollision; la de la factura a
	// domain.ErrDuplicateInvoice.
	Create(ctx context.Context, t *entity.TransactionIn) error
	GetByID(ctx context.Context, id string) (*entity.TransactionInDetail, error)
	ExistsInvoice(ctx context.Context, invoice string) (bool, error)
	// LastCode devuelve el código de la entrada más reciente (por creación
	// descendente) o cadena vacía si no hay registros.
	LastCode(ctx context.Context) (string, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.TransactionInDetail, int, error)
	Delete(ctx context.Context, id string) error
}
