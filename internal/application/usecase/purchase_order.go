package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRenderer genera el documento imprimible de una orden.
// products resuelve cada ProductID de los renglones a su código y nombre.
type PurchaseOrderRenderer interface {
	Render(po *entity.PurchaseOrderDetail, products map[string]entity.ProductRef) ([]byte, error)
}

// PurchaseOrderUseCase administra órdenes de compra. El número de orden lo
// define el comprador; la unicidad la respalda el constraint de la base.
type PurchaseOrderUseCase struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	renderer     PurchaseOrderRenderer
}

func NewPurchaseOrderUseCase(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	renderer PurchaseOrderRenderer,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		renderer:     renderer,
	}
}

func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.OrderNumber == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || !line.Amount.GreaterThan(decimal.Zero) || line.BasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	if s, err := uc.supplierRepo.GetByID(ctx, in.SupplierID); err != nil {
		return nil, err
	} else if s == nil {
		return nil, domain.ErrNotFound
	}
	for _, line := range in.Lines {
		if p, err := uc.productRepo.GetByID(ctx, line.ProductID); err != nil {
			return nil, err
		} else if p == nil {
			return nil, domain.ErrNotFound
		}
	}

	exists, err := uc.poRepo.ExistsOrderNumber(ctx, in.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		OrderNumber:  in.OrderNumber,
		SupplierID:   in.SupplierID,
		DeliveryDate: in.DeliveryDate,
		PaymentDate:  in.PaymentDate,
		Description:  in.Description,
		UsePPN:       in.UsePPN,
		PPN:          in.PPN,
		TotalPrice:   in.TotalPrice,
		CreatedAt:    time.Now(),
	}
	for _, line := range in.Lines {
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			ID:         uuid.New().String(),
			ProductID:  line.ProductID,
			BasePrice:  line.BasePrice,
			Amount:     line.Amount,
			TotalPrice: line.TotalPrice,
		})
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	detail, err := uc.poRepo.GetByID(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(detail), nil
}

func (uc *PurchaseOrderUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.poRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toPurchaseOrderResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *PurchaseOrderUseCase) FindOne(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseOrderResponse(po), nil
}

// ExportPDF genera la orden en PDF para enviarla al proveedor.
func (uc *PurchaseOrderUseCase) ExportPDF(ctx context.Context, id string) ([]byte, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	products := make(map[string]entity.ProductRef, len(po.Lines))
	for _, line := range po.Lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products[line.ProductID] = entity.ProductRef{ID: p.ID, Code: p.Code, Name: p.Name}
		}
	}
	return uc.renderer.Render(po, products)
}

func (uc *PurchaseOrderUseCase) Remove(ctx context.Context, id string) error {
	return uc.poRepo.Delete(ctx, id)
}

func toPurchaseOrderResponse(po *entity.PurchaseOrderDetail) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:           po.ID,
		OrderNumber:  po.OrderNumber,
		Supplier:     *toSupplierResponse(&po.Supplier),
		DeliveryDate: po.DeliveryDate,
		PaymentDate:  po.PaymentDate,
		Description:  po.Description,
		UsePPN:       po.UsePPN,
		PPN:          po.PPN,
		TotalPrice:   po.TotalPrice,
		CreatedAt:    po.CreatedAt,
	}
	for _, line := range po.Lines {
		resp.Lines = append(resp.Lines, dto.PurchaseOrderLineResponse{
			ID:         line.ID,
			ProductID:  line.ProductID,
			BasePrice:  line.BasePrice,
			Amount:     line.Amount,
			TotalPrice: line.TotalPrice,
		})
	}
	return resp
}
