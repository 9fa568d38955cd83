package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest renglón de una orden de compra nueva.
type PurchaseOrderLineRequest struct {
	ProductID  string          `json:"product_id"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Amount     decimal.Decimal `json:"amount"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	OrderNumber  string                     `json:"order_number"`
	SupplierID   string                     `json:"supplier_id"`
	DeliveryDate time.Time                  `json:"delivery_date"`
	PaymentDate  time.Time                  `json:"payment_date"`
	Description  string                     `json:"description,omitempty"`
	UsePPN       bool                       `json:"use_ppn"`
	PPN          decimal.Decimal            `json:"ppn"`
	TotalPrice   decimal.Decimal            `json:"total_price"`
	Lines        []PurchaseOrderLineRequest `json:"purchase_lists"`
}

// PurchaseOrderLineResponse renglón persistido.
type PurchaseOrderLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Amount     decimal.Decimal `json:"amount"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse orden de compra con proveedor resuelto.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	Supplier     SupplierResponse            `json:"supplier"`
	DeliveryDate time.Time                   `json:"delivery_date"`
	PaymentDate  time.Time                   `json:"payment_date"`
	Description  string                      `json:"description,omitempty"`
	UsePPN       bool                        `json:"use_ppn"`
	PPN          decimal.Decimal             `json:"ppn"`
	TotalPrice   decimal.Decimal             `json:"total_price"`
	CreatedAt    time.Time                   `json:"created_at"`
	Lines        []PurchaseOrderLineResponse `json:"purchase_lists"`
}

// PurchaseOrderListResponse listado paginado de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
