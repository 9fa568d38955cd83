package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	// Create inserta el proveedor; colisión del código SUP-n → domain.ErrCodeCollision.
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	LastCode(ctx context.Context) (string, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, int, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
}
