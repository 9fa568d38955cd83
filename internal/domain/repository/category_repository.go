package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Category, int, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
}
