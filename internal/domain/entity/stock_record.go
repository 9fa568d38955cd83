package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord es el contador autoritativo de existencias por (producto, bodega).
// Version es el sello de bloqueo optimista: sube exactamente en 1 con cada
// mutación confirmada y nunca retrocede. QtyOnHand nunca se confirma negativo.
type StockRecord struct {
	ProductID   string
	WarehouseID string
	QtyOnHand   decimal.Decimal
	Version     int64
	UpdatedAt   time.Time
}
