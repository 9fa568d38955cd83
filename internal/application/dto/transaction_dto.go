package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionInRequest body para POST /api/transactions-in.
type CreateTransactionInRequest struct {
	ProductID   string          `json:"product_id"`
	SupplierID  string          `json:"supplier_id"`
	WarehouseID string          `json:"warehouse_id"`
	Invoice     string          `json:"invoice"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
}

// CreateTransactionOutRequest body para POST /api/transactions-out.
type CreateTransactionOutRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Invoice     string          `json:"invoice"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     string          `json:"purpose"`
	ExitDate    *time.Time      `json:"exit_date,omitempty"`
}

// ProductRefResponse referencia de producto embebida en movimientos.
type ProductRefResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupplierRefResponse referencia de proveedor embebida en movimientos.
type SupplierRefResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// WarehouseRefResponse referencia de bodega embebida en movimientos.
type WarehouseRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionInResponse entrada con referencias resueltas.
type TransactionInResponse struct {
	ID        string               `json:"id"`
	Code      string               `json:"code"`
	Invoice   string               `json:"invoice"`
	Product   ProductRefResponse   `json:"product"`
	Supplier  SupplierRefResponse  `json:"supplier"`
	Warehouse WarehouseRefResponse `json:"warehouse"`
	Amount    decimal.Decimal      `json:"amount"`
	Date      time.Time            `json:"date"`
	CreatedAt time.Time            `json:"created_at"`
}

// TransactionOutResponse salida con referencias resueltas.
type TransactionOutResponse struct {
	ID        string               `json:"id"`
	Code      string               `json:"code"`
	Invoice   string               `json:"invoice"`
	Product   ProductRefResponse   `json:"product"`
	Warehouse WarehouseRefResponse `json:"warehouse"`
	Amount    decimal.Decimal      `json:"amount"`
	Purpose   string               `json:"purpose"`
	ExitDate  time.Time            `json:"exit_date"`
	CreatedAt time.Time            `json:"created_at"`
}

// TransactionInListResponse listado paginado de entradas.
type TransactionInListResponse struct {
	Items []TransactionInResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// TransactionOutListResponse listado paginado de salidas.
type TransactionOutListResponse struct {
	Items []TransactionOutResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
