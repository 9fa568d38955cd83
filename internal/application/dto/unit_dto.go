package dto

import "time"

// CreateUnitRequest body para POST /api/units. Code sin espacios.
type CreateUnitRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// UpdateUnitRequest body para PUT /api/units/:id.
type UpdateUnitRequest struct {
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UnitResponse unidad de medida.
type UnitResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnitListResponse listado paginado de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
