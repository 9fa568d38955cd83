package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder es una orden de compra a un proveedor, con sus renglones.
// OrderNumber lo define el comprador y es único.
type PurchaseOrder struct {
	ID           string
	OrderNumber  string
	SupplierID   string
	DeliveryDate time.Time
	PaymentDate  time.Time
	Description  string
	UsePPN       bool
	PPN          decimal.Decimal
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	Lines        []PurchaseOrderLine
}

// PurchaseOrderLine renglón de la orden (producto, precio base, cantidad).
type PurchaseOrderLine struct {
	ID         string
	ProductID  string
	BasePrice  decimal.Decimal
	Amount     decimal.Decimal
	TotalPrice decimal.Decimal
}

// PurchaseOrderDetail vista de lectura con el proveedor resuelto.
type PurchaseOrderDetail struct {
	ID           string
	OrderNumber  string
	Supplier     Supplier
	DeliveryDate time.Time
	PaymentDate  time.Time
	Description  string
	UsePPN       bool
	PPN          decimal.Decimal
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	Lines        []PurchaseOrderLine
}
