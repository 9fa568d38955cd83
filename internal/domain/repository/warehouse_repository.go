package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// WarehouseRepository puerto de persistencia de bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Warehouse, int, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	Delete(ctx context.Context, id string) error
}
