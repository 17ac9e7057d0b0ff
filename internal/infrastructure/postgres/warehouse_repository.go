package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouses (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		w.ID, w.Name, w.Address, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID con sus ubicaciones.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.get(ctx, `SELECT id, name, address, created_at, updated_at FROM warehouses WHERE id = $1`, id)
}

// GetByName búsqueda sin distinguir mayúsculas.
func (r *WarehouseRepo) GetByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	return r.get(ctx, `SELECT id, name, address, created_at, updated_at FROM warehouses WHERE lower(name) = lower($1)`, name)
}

func (r *WarehouseRepo) get(ctx context.Context, query, arg string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, arg).Scan(&w.ID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	locs, err := r.locations(ctx, []string{w.ID})
	if err != nil {
		return nil, err
	}
	w.Locations = locs[w.ID]
	return &w, nil
}

// List lista bodegas con paginación, cada una con sus ubicaciones.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, address, created_at, updated_at
		FROM warehouses ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var (
		list []*entity.Warehouse
		ids  []string
	)
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	locs, err := r.locations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, w := range list {
		w.Locations = locs[w.ID]
	}
	return list, nil
}

// AddLocation persiste una ubicación. El nombre es único dentro de la bodega.
func (r *WarehouseRepo) AddLocation(ctx context.Context, loc *entity.Location) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO locations (id, warehouse_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		loc.ID, loc.WarehouseID, loc.Name, loc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) locations(ctx context.Context, warehouseIDs []string) (map[string][]entity.Location, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, warehouse_id, name, created_at
		FROM locations WHERE warehouse_id = ANY($1) ORDER BY name`, warehouseIDs)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.Location, len(warehouseIDs))
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.WarehouseID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out[l.WarehouseID] = append(out[l.WarehouseID], l)
	}
	return out, rows.Err()
}
