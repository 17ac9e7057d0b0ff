package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerQueryRequest query de GET /api/ledger.
type LedgerQueryRequest struct {
	ProductID    string `query:"product_id"`
	WarehouseID  string `query:"warehouse_id"`
	LocationID   string `query:"location_id"`
	DocumentType string `query:"document_type"`
	DocumentID   string `query:"document_id"`
	Order        string `query:"order"` // asc (por defecto) | desc
	Skip         int    `query:"skip"`
	Limit        int    `query:"limit"`
}

// LedgerEntryResponse salida de una entrada del ledger.
type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	Seq            int64           `json:"seq"`
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	LocationID     string          `json:"location_id,omitempty"`
	ChangeQuantity int64           `json:"change_quantity"`
	NewStockLevel  int64           `json:"new_stock_level"`
	DocumentType   string          `json:"document_type"`
	DocumentID     string          `json:"document_id"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	CreatedBy      string          `json:"created_by"`
	Timestamp      time.Time       `json:"timestamp"`
}

// LedgerListResponse lista paginada del ledger.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// StockLevelResponse cantidad actual de una clave del índice.
type StockLevelResponse struct {
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	LocationID   string    `json:"location_id,omitempty"`
	Quantity     int64     `json:"quantity"`
	ReorderPoint int64     `json:"reorder_point"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReconcileResponse resultado de reconstruir el índice desde el ledger.
type ReconcileResponse struct {
	Consistent      bool               `json:"consistent"`
	EntriesReplayed int                `json:"entries_replayed"`
	KeysChecked     int                `json:"keys_checked"`
	Mismatches      []StockMismatchDTO `json:"mismatches"`
	ChainBreaks     []ChainBreakDTO    `json:"chain_breaks"`
}

// StockMismatchDTO diferencia entre índice vivo y reconstruido.
type StockMismatchDTO struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	LocationID  string `json:"location_id,omitempty"`
	Live        int64  `json:"live"`
	Replayed    int64  `json:"replayed"`
}

// ChainBreakDTO entrada cuyo new_stock_level rompe la secuencia.
type ChainBreakDTO struct {
	EntryID  string `json:"entry_id"`
	Seq      int64  `json:"seq"`
	Expected int64  `json:"expected"`
	Recorded int64  `json:"recorded"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku_code"`
	ProductName        string          `json:"product_name"`
	WarehouseID        string          `json:"warehouse_id"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderPoint       int64           `json:"reorder_point"`
	IdealStock         int64           `json:"ideal_stock"`          // ReorderPoint * 1.5
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
