package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo ledger append-only sobre PostgreSQL. seq (BIGSERIAL) define el orden de inserción.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append inserta la entrada y asigna Seq.
func (r *LedgerRepo) Append(ctx context.Context, e *entity.LedgerEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO ledger_entries (id, product_id, warehouse_id, location_id, change_quantity, new_stock_level,
			document_type, document_id, unit_cost, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`,
		e.ID, e.ProductID, e.WarehouseID, nullable(e.LocationID), e.ChangeQuantity, e.NewStockLevel,
		string(e.DocumentType), e.DocumentID, e.UnitCost, e.CreatedBy, e.Timestamp,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// Query entradas filtradas por seq ascendente (o descendente).
func (r *LedgerRepo) Query(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	var w where
	if f.ProductID != "" {
		w.add("product_id = ?", f.ProductID)
	}
	if f.WarehouseID != "" {
		w.add("warehouse_id = ?", f.WarehouseID)
	}
	if f.LocationID != "" {
		w.add("location_id = ?", f.LocationID)
	}
	if f.DocumentType != "" {
		w.add("document_type = ?", string(f.DocumentType))
	}
	if f.DocumentID != "" {
		w.add("document_id = ?", f.DocumentID)
	}
	query := `
		SELECT seq, id, product_id, warehouse_id, location_id, change_quantity, new_stock_level,
			document_type, document_id, unit_cost, created_by, created_at
		FROM ledger_entries` + w.sql() + ` ORDER BY seq`
	if f.Descending {
		query += " DESC"
	}
	if f.Limit > 0 {
		query += " LIMIT " + w.arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + w.arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var (
			e       entity.LedgerEntry
			loc     *string
			docType string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &e.ProductID, &e.WarehouseID, &loc, &e.ChangeQuantity, &e.NewStockLevel,
			&docType, &e.DocumentID, &e.UnitCost, &e.CreatedBy, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.LocationID = deref(loc)
		e.DocumentType = entity.DocumentType(docType)
		list = append(list, &e)
	}
	return list, rows.Err()
}
