package entity

import "time"

// Product representa un producto o repuesto del inventario.
// Code se asigna secuencialmente (PART-n) y es único.
type Product struct {
	ID         string
	Code       string
	Name       string
	CategoryID string
	UnitID     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductDetail vista de lectura con categoría y unidad resueltas.
type ProductDetail struct {
	ID        string
	Code      string
	Name      string
	Category  Category
	Unit      Unit
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductRef referencia mínima embebida en otras vistas (movimientos, órdenes).
type ProductRef struct {
	ID   string
	Code string
	Name string
}
