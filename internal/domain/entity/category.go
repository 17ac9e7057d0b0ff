package entity

import "time"

// Category agrupa productos para filtros y KPIs.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
