package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UnitUseCase administra unidades de medida. El código (PZ, KG, M)
// lo define el usuario y no admite espacios.
type UnitUseCase struct {
	unitRepo repository.UnitRepository
}

func NewUnitUseCase(unitRepo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{unitRepo: unitRepo}
}

func validUnitCode(code string) bool {
	return code != "" && !strings.ContainsAny(code, " \t")
}

func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if !validUnitCode(in.Code) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	u := &entity.Unit{
		ID:          uuid.New().String(),
		Code:        strings.ToUpper(in.Code),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) Find(ctx context.Context, page dto.PageRequest) (*dto.UnitListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.unitRepo.List(ctx, page.Search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *UnitUseCase) FindOne(ctx context.Context, id string) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) Update(ctx context.Context, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		if !validUnitCode(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		u.Code = strings.ToUpper(*in.Code)
	}
	if in.Description != nil {
		u.Description = *in.Description
	}
	u.UpdatedAt = time.Now()
	if err := uc.unitRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

func (uc *UnitUseCase) Remove(ctx context.Context, id string) error {
	return uc.unitRepo.Delete(ctx, id)
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:          u.ID,
		Code:        u.Code,
		Description: u.Description,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
