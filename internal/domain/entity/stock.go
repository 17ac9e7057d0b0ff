package entity

import "time"

// StockKey identifica una celda del índice de stock. LocationID vacío = nivel bodega.
type StockKey struct {
	ProductID   string
	WarehouseID string
	LocationID  string
}

// String representación estable, usada para ordenar y como clave de lock.
func (k StockKey) String() string {
	return k.ProductID + "/" + k.WarehouseID + "/" + k.LocationID
}

// Less orden total determinista para adquirir locks sin interbloqueos.
func (k StockKey) Less(o StockKey) bool {
	if k.ProductID != o.ProductID {
		return k.ProductID < o.ProductID
	}
	if k.WarehouseID != o.WarehouseID {
		return k.WarehouseID < o.WarehouseID
	}
	return k.LocationID < o.LocationID
}

// StockLevel cantidad actual por clave; derivada del ledger.
type StockLevel struct {
	StockKey
	Quantity  int64
	UpdatedAt time.Time
}
