package inventory

import (
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// ApplyDelta calcula la nueva cantidad de una clave. Con allowNegative=false
// un resultado negativo devuelve *domain.NegativeStockError.
func ApplyDelta(key entity.StockKey, current, delta int64, allowNegative bool) (int64, error) {
	next := current + delta
	if next < 0 && !allowNegative {
		return current, &domain.NegativeStockError{Key: key.String(), Current: current, Delta: delta}
	}
	return next, nil
}

// AdjustmentDelta delta que lleva el stock actual al conteo físico.
func AdjustmentDelta(current, counted int64) int64 {
	return counted - current
}

// Requirement demanda agregada de una clave dentro de un documento.
type Requirement struct {
	Key      entity.StockKey
	Quantity int64
}

// CheckAvailability verifica que cada requerimiento quepa en el stock disponible.
// Devuelve el primer faltante en el orden de reqs.
func CheckAvailability(reqs []Requirement, available map[entity.StockKey]int64) error {
	for _, r := range reqs {
		have := available[r.Key]
		if have < r.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   r.Key.ProductID,
				WarehouseID: r.Key.WarehouseID,
				LocationID:  r.Key.LocationID,
				Available:   have,
				Requested:   r.Quantity,
			}
		}
	}
	return nil
}
