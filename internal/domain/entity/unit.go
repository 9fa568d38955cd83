package entity

import "time"

// Unit es la unidad de medida de un producto (PZ, KG, M, ...).
// Code no admite espacios.
type Unit struct {
	ID          string
	Code        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
