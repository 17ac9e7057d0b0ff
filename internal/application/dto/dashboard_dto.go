package dto

import "github.com/shopspring/decimal"

// KPIFilterRequest query de GET /api/dashboard/kpis.
type KPIFilterRequest struct {
	DocumentType string `query:"document_type"`
	Status       string `query:"status"`
	WarehouseID  string `query:"warehouse_id"`
	LocationID   string `query:"location_id"`
	CategoryID   string `query:"product_category_id"`
}

// DashboardKPIsDTO respuesta de GET /api/dashboard/kpis.
type DashboardKPIsDTO struct {
	TotalProductsInStock       int64           `json:"total_products_in_stock"`
	LowStockItems              int64           `json:"low_stock_items"`
	OutOfStockItems            int64           `json:"out_of_stock_items"`
	PendingReceipts            int64           `json:"pending_receipts"`
	PendingDeliveries          int64           `json:"pending_deliveries"`
	InternalTransfersScheduled int64           `json:"internal_transfers_scheduled"`
	StockValue                 decimal.Decimal `json:"stock_value"` // Σ cantidad × costo promedio
}

// ValuationRequest query de GET /api/stock/valuation.
type ValuationRequest struct {
	WarehouseID string `query:"warehouse_id"`
	CategoryID  string `query:"category_id"`
	TopN        int    `query:"top_n"`
}

// ValuationDTO valor del inventario a costo promedio con clasificación ABC.
type ValuationDTO struct {
	TotalValue  decimal.Decimal         `json:"total_value"`
	TotalUnits  int64                   `json:"total_units"`
	Warehouses  []WarehouseValuationDTO `json:"warehouses"`
	SKURanking  []SKUValuationDTO       `json:"sku_ranking"`
	ClassACount int                     `json:"class_a_count"`
}

// WarehouseValuationDTO valor por bodega con su participación en el total.
type WarehouseValuationDTO struct {
	WarehouseID string          `json:"warehouse_id"`
	Units       int64           `json:"units"`
	Value       decimal.Decimal `json:"value"`
	ValuePct    decimal.Decimal `json:"value_pct"`
}

// SKUValuationDTO posición de un SKU en el ranking por valor.
type SKUValuationDTO struct {
	Rank             int             `json:"rank"`
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku_code"`
	ProductName      string          `json:"product_name"`
	Units            int64           `json:"units"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Value            decimal.Decimal `json:"value"`
	ValuePct         decimal.Decimal `json:"value_pct"`
	CumulativeValPct decimal.Decimal `json:"cumulative_value_pct"`
	Class            string          `json:"abc_class"` // A, B o C
}
