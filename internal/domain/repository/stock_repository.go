package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// StockFilter filtros del listado del índice de stock.
type StockFilter struct {
	ProductID   string
	WarehouseID string
	LocationID  string
	CategoryID  string
}

// StockRepository define el puerto del índice de stock por (producto, bodega, ubicación).
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve cantidad 0 si la clave nunca se ha visto.
	Get(ctx context.Context, key entity.StockKey) (*entity.StockLevel, error)
	// GetForUpdate bloquea la clave hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockLevel, error)
	Upsert(ctx context.Context, level *entity.StockLevel) error
	List(ctx context.Context, filter StockFilter) ([]entity.StockLevel, error)
}
