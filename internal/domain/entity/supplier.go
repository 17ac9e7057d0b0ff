package entity

import "time"

// Supplier proveedor de mercancía para recepciones.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
