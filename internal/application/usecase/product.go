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

// maxRetry acota los reintentos cuando el código secuencial asignado
// (PART-n, SUP-n) choca con el constraint único.
const maxRetry = 5

// ProductUseCase administra el catálogo de productos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, unitRepo: unitRepo}
}

// Create registra un producto asignando el siguiente código PART-n.
// Una colisión del código reintenta la asignación completa.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.UnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if cat, err := uc.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	} else if cat == nil {
		return nil, domain.ErrNotFound
	}
	if unit, err := uc.unitRepo.GetByID(ctx, in.UnitID); err != nil {
		return nil, err
	} else if unit == nil {
		return nil, domain.ErrNotFound
	}

	for attempt := 1; attempt <= maxRetry; attempt++ {
		last, err := uc.productRepo.LastCode(ctx)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		p := &entity.Product{
			ID:         uuid.New().String(),
			Code:       inventory.NextCode(inventory.PrefixProduct, last),
			Name:       in.Name,
			CategoryID: in.CategoryID,
			UnitID:     in.UnitID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.productRepo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrCodeCollision) {
				continue
			}
			return nil, err
		}
		detail, err := uc.productRepo.GetByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		return toProductResponse(detail), nil
	}
	return nil, domain.ErrConflictExhausted
}

func (uc *ProductUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.productRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *ProductUseCase) FindOne(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Update modifica los campos presentes; el código PART-n nunca cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	current, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	p := &entity.Product{
		ID:         current.ID,
		Code:       current.Code,
		Name:       current.Name,
		CategoryID: current.Category.ID,
		UnitID:     current.Unit.ID,
		CreatedAt:  current.CreatedAt,
		UpdatedAt:  time.Now(),
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = *in.Name
	}
	if in.CategoryID != nil {
		if cat, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		} else if cat == nil {
			return nil, domain.ErrNotFound
		}
		p.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		if unit, err := uc.unitRepo.GetByID(ctx, *in.UnitID); err != nil {
			return nil, err
		} else if unit == nil {
			return nil, domain.ErrNotFound
		}
		p.UnitID = *in.UnitID
	}
	if err := uc.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	detail, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(detail), nil
}

func (uc *ProductUseCase) Remove(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}

func toProductResponse(p *entity.ProductDetail) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:   p.ID,
		Code: p.Code,
		Name: p.Name,
		Category: dto.CategoryResponse{
			ID: p.Category.ID, Name: p.Category.Name,
			CreatedAt: p.Category.CreatedAt, UpdatedAt: p.Category.UpdatedAt,
		},
		Unit: dto.UnitResponse{
			ID: p.Unit.ID, Code: p.Unit.Code, Description: p.Unit.Description,
			CreatedAt: p.Unit.CreatedAt, UpdatedAt: p.Unit.UpdatedAt,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
