package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SupplierUseCase administra proveedores con código secuencial SUP-n.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	for attempt := 1; attempt <= maxRetry; attempt++ {
		last, err := uc.supplierRepo.LastCode(ctx)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		s := &entity.Supplier{
			ID:        uuid.New().String(),
			Code:      inventory.NextCode(inventory.PrefixSupplier, last),
			Name:      in.Name,
			Address:   in.Address,
			Contact:   in.Contact,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.supplierRepo.Create(ctx, s); err != nil {
			if errors.Is(err, domain.ErrCodeCollision) {
				continue
			}
			return nil, err
		}
		return toSupplierResponse(s), nil
	}
	return nil, domain.ErrConflictExhausted
}

func (uc *SupplierUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.supplierRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *SupplierUseCase) FindOne(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		s.Name = *in.Name
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Contact != nil {
		s.Contact = *in.Contact
	}
	s.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Remove(ctx context.Context, id string) error {
	return uc.supplierRepo.Delete(ctx, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		Address:   s.Address,
		Contact:   s.Contact,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
