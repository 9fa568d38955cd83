package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	UnitID     string `json:"unit_id"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name       *string `json:"name,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	UnitID     *string `json:"unit_id,omitempty"`
}

// ProductResponse producto con categoría y unidad resueltas.
type ProductResponse struct {
	ID        string           `json:"id"`
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Category  CategoryResponse `json:"category"`
	Unit      UnitResponse     `json:"unit"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
