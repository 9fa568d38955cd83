package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionIn es una entrada de mercancía (recepción de un proveedor).
// Code es el código secuencial legible (TR-n); Invoice es único entre entradas.
// Inmutable una vez creada, salvo el borrado que revierte su efecto en stock.
type TransactionIn struct {
	ID          string
	Code        string
	Invoice     string
	ProductID   string
	SupplierID  string
	WarehouseID string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}

// TransactionInDetail es la vista de lectura con las referencias resueltas.
type TransactionInDetail struct {
	ID        string
	Code      string
	Invoice   string
	Product   ProductRef
	Supplier  SupplierRef
	Warehouse WarehouseRef
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}
