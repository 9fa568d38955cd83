package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia de órdenes de compra.
// Create inserta la orden con sus renglones en una sola transacción.
type PurchaseOrderRepository interface {
	// Create inserta la orden; orderNumber duplicado → domain.ErrDuplicate.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrderDetail, error)
	ExistsOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.PurchaseOrderDetail, int, error)
	Delete(ctx context.Context, id string) error
}
