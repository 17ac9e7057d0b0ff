package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType variante del documento de inventario.
type DocumentType string

const (
	DocumentTypeReceipt    DocumentType = "Receipt"
	DocumentTypeDelivery   DocumentType = "Delivery"
	DocumentTypeTransfer   DocumentType = "Internal Transfer"
	DocumentTypeAdjustment DocumentType = "Adjustment"
)

// Valid indica si el tipo es conocido.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeReceipt, DocumentTypeDelivery, DocumentTypeTransfer, DocumentTypeAdjustment:
		return true
	}
	return false
}

// DocumentStatus estado del flujo Draft → Waiting → Ready → Done; Canceled desde cualquier no terminal.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "Draft"
	StatusWaiting  DocumentStatus = "Waiting"
	StatusReady    DocumentStatus = "Ready"
	StatusDone     DocumentStatus = "Done"
	StatusCanceled DocumentStatus = "Canceled"
)

// PendingStatuses estados no terminales.
var PendingStatuses = []DocumentStatus{StatusDraft, StatusWaiting, StatusReady}

// Valid indica si el estado es conocido.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal Done y Canceled no admiten más transiciones.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// CanAdvanceTo transiciones intermedias permitidas (sin efectos en el ledger).
func (s DocumentStatus) CanAdvanceTo(to DocumentStatus) bool {
	switch s {
	case StatusDraft:
		return to == StatusWaiting || to == StatusReady
	case StatusWaiting:
		return to == StatusReady
	}
	return false
}

// Document unión etiquetada sobre Receipt, Delivery, Transfer y Adjustment.
// Los campos específicos de cada variante quedan vacíos en las demás.
type Document struct {
	ID     string
	Type   DocumentType
	Status DocumentStatus

	SupplierID      string // Receipt
	WarehouseID     string // Receipt, Delivery, Adjustment
	FromWarehouseID string // Transfer
	ToWarehouseID   string // Transfer
	Reason          string // Adjustment

	Lines []DocumentLine

	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DoneAt     *time.Time // validated_at / completed_at
	CanceledAt *time.Time
	Version    int
}

// DocumentLine línea de un documento. Inmutable una vez el documento está Done.
type DocumentLine struct {
	ProductID      string
	Quantity       int64  // recibida, entregada o transferida
	LocationID     string // Receipt, Delivery, Adjustment
	FromLocationID string // Transfer
	ToLocationID   string // Transfer

	CountedQuantity int64 // Adjustment: conteo físico
	SystemQuantity  int64 // Adjustment: stock registrado al momento del conteo

	UnitCost *decimal.Decimal // Receipt: costo de entrada opcional
}
