package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Cost es promedio ponderado calculado desde recepciones; el stock se lleva por bodega en StockLevel.
type Product struct {
	ID            string
	Name          string
	SKU           string // código único global
	CategoryID    string
	UnitOfMeasure string
	InitialStock  int64 // informativo; no genera movimientos
	ReorderPoint  int64 // umbral de stock bajo; 0 = usar el umbral por defecto
	Cost          decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
