package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// TransactionOutRepository puerto de persistencia de salidas de mercancía.
// Misma disciplina de errores que TransactionInRepository en Create.
type TransactionOutRepository interface {
	Create(ctx context.Context, t *entity.TransactionOut) error
	GetByID(ctx context.Context, id string) (*entity.TransactionOutDetail, error)
	ExistsInvoice(ctx context.Context, invoice string) (bool, error)
	LastCode(ctx context.Context) (string, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.TransactionOutDetail, int, error)
	Delete(ctx context.Context, id string) error
}
