package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo índice de stock sobre PostgreSQL (usable con pool o tx).
// location_id NULL representa el nivel bodega; la constraint stock_levels_key usa NULLS NOT DISTINCT.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockByKey = `
	SELECT product_id, warehouse_id, location_id, quantity, updated_at
	FROM stock_levels
	WHERE product_id = $1 AND warehouse_id = $2 AND location_id IS NOT DISTINCT FROM $3`

func scanLevel(row pgx.Row) (*entity.StockLevel, error) {
	var (
		l   entity.StockLevel
		loc *string
	)
	if err := row.Scan(&l.ProductID, &l.WarehouseID, &loc, &l.Quantity, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.LocationID = deref(loc)
	return &l, nil
}

// Get obtiene el stock actual de la clave; cantidad 0 si no existe.
func (r *StockRepo) Get(ctx context.Context, key entity.StockKey) (*entity.StockLevel, error) {
	l, err := scanLevel(r.q.QueryRow(ctx, stockByKey, key.ProductID, key.WarehouseID, nullable(key.LocationID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{StockKey: key}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return l, nil
}

// GetForUpdate asegura que la fila exista y la bloquea (SELECT FOR UPDATE) hasta el fin de la tx.
// Sin la fila previa dos transacciones podrían leer 0 a la vez para una clave nueva.
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockLevel, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (product_id, warehouse_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT ON CONSTRAINT stock_levels_key DO NOTHING`,
		key.ProductID, key.WarehouseID, nullable(key.LocationID),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	l, err := scanLevel(r.q.QueryRow(ctx, stockByKey+` FOR UPDATE`, key.ProductID, key.WarehouseID, nullable(key.LocationID)))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return l, nil
}

// Upsert inserta o actualiza la cantidad de la clave.
func (r *StockRepo) Upsert(ctx context.Context, level *entity.StockLevel) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_levels (product_id, warehouse_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT stock_levels_key
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		level.ProductID, level.WarehouseID, nullable(level.LocationID), level.Quantity, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List niveles filtrados; el filtro de categoría se resuelve con join a products.
func (r *StockRepo) List(ctx context.Context, f repository.StockFilter) ([]entity.StockLevel, error) {
	var w where
	if f.ProductID != "" {
		w.add("s.product_id = ?", f.ProductID)
	}
	if f.WarehouseID != "" {
		w.add("s.warehouse_id = ?", f.WarehouseID)
	}
	if f.LocationID != "" {
		w.add("s.location_id = ?", f.LocationID)
	}
	if f.CategoryID != "" {
		w.add("p.category_id = ?", f.CategoryID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT s.product_id, s.warehouse_id, s.location_id, s.quantity, s.updated_at
		FROM stock_levels s JOIN products p ON p.id = s.product_id`+w.sql()+`
		ORDER BY s.product_id, s.warehouse_id, s.location_id NULLS FIRST`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []entity.StockLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}
