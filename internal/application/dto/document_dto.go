package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItemRequest línea de recepción.
type ReceiptItemRequest struct {
	ProductID        string           `json:"product_id"`
	QuantityReceived int64            `json:"quantity_received"`
	LocationID       string           `json:"location_id,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
}

// CreateReceiptRequest body de POST /api/receipts.
type CreateReceiptRequest struct {
	SupplierID   string               `json:"supplier_id"`
	WarehouseID  string               `json:"warehouse_id"`
	Status       string               `json:"status,omitempty"`
	ReceiptItems []ReceiptItemRequest `json:"receipt_items"`
}

// DeliveryItemRequest línea de entrega.
type DeliveryItemRequest struct {
	ProductID         string `json:"product_id"`
	QuantityDelivered int64  `json:"quantity_delivered"`
	LocationID        string `json:"location_id,omitempty"`
}

// CreateDeliveryRequest body de POST /api/deliveries.
type CreateDeliveryRequest struct {
	WarehouseID   string                `json:"warehouse_id"`
	Status        string                `json:"status,omitempty"`
	DeliveryItems []DeliveryItemRequest `json:"delivery_items"`
}

// TransferItemRequest línea de transferencia interna.
type TransferItemRequest struct {
	ProductID      string `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	FromLocationID string `json:"from_location_id,omitempty"`
	ToLocationID   string `json:"to_location_id,omitempty"`
}

// CreateTransferRequest body de POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id"`
	ToWarehouseID   string                `json:"to_warehouse_id"`
	Status          string                `json:"status,omitempty"`
	TransferItems   []TransferItemRequest `json:"transfer_items"`
}

// AdjustmentItemRequest línea de ajuste (conteo físico).
type AdjustmentItemRequest struct {
	ProductID       string `json:"product_id"`
	CountedQuantity int64  `json:"counted_quantity"`
	LocationID      string `json:"location_id,omitempty"`
}

// CreateAdjustmentRequest body de POST /api/adjustments.
type CreateAdjustmentRequest struct {
	WarehouseID     string                  `json:"warehouse_id"`
	Reason          string                  `json:"reason"`
	AdjustmentItems []AdjustmentItemRequest `json:"adjustment_items"`
}

// ChangeStatusRequest body de PUT /api/{tipo}/:id/status (Waiting, Ready).
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// DocumentLineResponse línea de un documento en cualquier variante.
type DocumentLineResponse struct {
	ProductID       string           `json:"product_id"`
	Quantity        int64            `json:"quantity"`
	LocationID      string           `json:"location_id,omitempty"`
	FromLocationID  string           `json:"from_location_id,omitempty"`
	ToLocationID    string           `json:"to_location_id,omitempty"`
	CountedQuantity *int64           `json:"counted_quantity,omitempty"`
	SystemQuantity  *int64           `json:"system_quantity,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
}

// DocumentResponse salida común para recepciones, entregas, transferencias y ajustes.
type DocumentResponse struct {
	ID              string                 `json:"id"`
	Type            string                 `json:"document_type"`
	Status          string                 `json:"status"`
	SupplierID      string                 `json:"supplier_id,omitempty"`
	WarehouseID     string                 `json:"warehouse_id,omitempty"`
	FromWarehouseID string                 `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string                 `json:"to_warehouse_id,omitempty"`
	Reason          string                 `json:"reason,omitempty"`
	Items           []DocumentLineResponse `json:"items"`
	CreatedBy       string                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	DoneAt          *time.Time             `json:"done_at,omitempty"`
	CanceledAt      *time.Time             `json:"canceled_at,omitempty"`
	LedgerEntries   []LedgerEntryResponse  `json:"ledger_entries,omitempty"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
