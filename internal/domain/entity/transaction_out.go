package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionOut es una salida de mercancía (despacho con propósito).
// Invoice es único entre salidas (alcance separado de las entradas).
type TransactionOut struct {
	ID          string
	Code        string
	Invoice     string
	ProductID   string
	WarehouseID string
	Amount      decimal.Decimal
	Purpose     string
	ExitDate    time.Time
	CreatedAt   time.Time
}

// TransactionOutDetail es la vista de lectura con las referencias resueltas.
type TransactionOutDetail struct {
	ID        string
	Code      string
	Invoice   string
	Product   ProductRef
	Warehouse WarehouseRef
	Amount    decimal.Decimal
	Purpose   string
	ExitDate  time.Time
	CreatedAt time.Time
}
