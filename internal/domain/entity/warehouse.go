package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	Locations []Location
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location ubicación física dentro de una bodega (estante, pasillo, zona).
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	CreatedAt   time.Time
}

// HasLocation indica si la ubicación pertenece a la bodega.
func (w *Warehouse) HasLocation(locationID string) bool {
	for _, l := range w.Locations {
		if l.ID == locationID {
			return true
		}
	}
	return false
}
