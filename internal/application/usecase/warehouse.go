package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// WarehouseUseCase administra bodegas.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
}

func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo}
}

func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

func (uc *WarehouseUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.warehouseRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *WarehouseUseCase) FindOne(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(w), nil
}

func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		w.Name = *in.Name
	}
	w.UpdatedAt = time.Now()
	if err := uc.warehouseRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

func (uc *WarehouseUseCase) Remove(ctx context.Context, id string) error {
	return uc.warehouseRepo.Delete(ctx, id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
