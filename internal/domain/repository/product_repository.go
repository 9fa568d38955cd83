package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
type ProductRepository interface {
	// Create inserta el producto; colisión del código PART-n → domain.ErrCodeCollision.
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.ProductDetail, error)
	LastCode(ctx context.Context) (string, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.ProductDetail, int, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
