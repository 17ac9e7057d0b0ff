package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry registro inmutable de un cambio de stock. Seq define el orden de inserción.
type LedgerEntry struct {
	ID             string
	Seq            int64
	ProductID      string
	WarehouseID    string
	LocationID     string
	ChangeQuantity int64
	NewStockLevel  int64
	DocumentType   DocumentType
	DocumentID     string
	UnitCost       decimal.Decimal
	CreatedBy      string
	Timestamp      time.Time
}

// Key clave de stock afectada por la entrada.
func (e *LedgerEntry) Key() StockKey {
	return StockKey{ProductID: e.ProductID, WarehouseID: e.WarehouseID, LocationID: e.LocationID}
}

// LedgerDraft lo que un documento pide asentar; el ledger asigna id, seq, nivel y fecha.
type LedgerDraft struct {
	Key            StockKey
	ChangeQuantity int64
	DocumentType   DocumentType
	DocumentID     string
	UnitCost       decimal.Decimal
	CreatedBy      string
}
