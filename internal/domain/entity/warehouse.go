package entity

import "time"

// Warehouse representa una bodega física.
type Warehouse struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WarehouseRef referencia mínima embebida en otras vistas.
type WarehouseRef struct {
	ID   string
	Name string
}
