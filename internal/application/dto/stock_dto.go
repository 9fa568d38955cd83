package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecordResponse fila del ledger para el panel de administración.
// La versión se expone para diagnóstico; los clientes no deben depender de ella.
type StockRecordResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	QtyOnHand   decimal.Decimal `json:"qty_on_hand"`
	Version     int64           `json:"version"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockListResponse listado de stock.
type StockListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
