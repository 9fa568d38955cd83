package entity

import "time"

// Supplier representa un proveedor. Code se asigna secuencialmente (SUP-n).
type Supplier struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupplierRef referencia mínima embebida en otras vistas.
type SupplierRef struct {
	ID   string
	Code string
	Name string
}
