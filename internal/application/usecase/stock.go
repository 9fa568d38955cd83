package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockUseCase lecturas del ledger para el panel de administración.
// Las mutaciones del contador pasan exclusivamente por los movimientos.
type StockUseCase struct {
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

func NewStockUseCase(
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, warehouseRepo: warehouseRepo, productRepo: productRepo}
}

// ByWarehouse lista las filas de stock de una bodega.
func (uc *StockUseCase) ByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) (*dto.StockListResponse, error) {
	if w, err := uc.warehouseRepo.GetByID(ctx, warehouseID); err != nil {
		return nil, err
	} else if w == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.stockRepo.ListByWarehouse(ctx, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toStockListResponse(list, page), nil
}

// ByProduct lista las filas de stock de un producto en todas las bodegas.
func (uc *StockUseCase) ByProduct(ctx context.Context, productID string) (*dto.StockListResponse, error) {
	if p, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	} else if p == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	page := dto.PageRequest{}
	page.DefaultPage()
	return toStockListResponse(list, page), nil
}

func toStockListResponse(list []*entity.StockRecord, page dto.PageRequest) *dto.StockListResponse {
	items := make([]dto.StockRecordResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, dto.StockRecordResponse{
			ProductID:   rec.ProductID,
			WarehouseID: rec.WarehouseID,
			QtyOnHand:   rec.QtyOnHand,
			Version:     rec.Version,
			UpdatedAt:   rec.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}
}
