package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UnitRepository puerto de persistencia de unidades de medida.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Unit, int, error)
	Update(ctx context.Context, u *entity.Unit) error
	Delete(ctx context.Context, id string) error
}
