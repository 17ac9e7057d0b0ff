package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, type, status, supplier_id, warehouse_id, from_warehouse_id, to_warehouse_id,
	reason, created_by, created_at, updated_at, done_at, canceled_at, version`

// DocumentRepo documentos y líneas sobre PostgreSQL, con versión optimista.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		d                      entity.Document
		docType, status        string
		supplier, wh, from, to *string
	)
	if err := row.Scan(&d.ID, &docType, &status, &supplier, &wh, &from, &to,
		&d.Reason, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt, &d.DoneAt, &d.CanceledAt, &d.Version); err != nil {
		return nil, err
	}
	d.Type = entity.DocumentType(docType)
	d.Status = entity.DocumentStatus(status)
	d.SupplierID, d.WarehouseID = deref(supplier), deref(wh)
	d.FromWarehouseID, d.ToWarehouseID = deref(from), deref(to)
	return &d, nil
}

// Create persiste el documento y sus líneas en un solo batch.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		d.ID, string(d.Type), string(d.Status), nullable(d.SupplierID), nullable(d.WarehouseID),
		nullable(d.FromWarehouseID), nullable(d.ToWarehouseID), d.Reason, d.CreatedBy,
		d.CreatedAt, d.UpdatedAt, d.DoneAt, d.CanceledAt, d.Version,
	)
	for i, l := range d.Lines {
		b.Queue(`
			INSERT INTO document_lines (document_id, line_no, product_id, quantity, location_id,
				from_location_id, to_location_id, counted_quantity, system_quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			d.ID, i, l.ProductID, l.Quantity, nullable(l.LocationID),
			nullable(l.FromLocationID), nullable(l.ToLocationID), l.CountedQuantity, l.SystemQuantity, l.UnitCost,
		)
	}
	br := r.q.SendBatch(ctx, b)
	defer br.Close()
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert document: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas; nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del documento hasta el fin de la transacción.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	lines, err := r.lines(ctx, []string{d.ID})
	if err != nil {
		return nil, err
	}
	d.Lines = lines[d.ID]
	return d, nil
}

// UpdateStatus cambia estado y fechas si la versión coincide; incrementa la versión.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, d *entity.Document) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE documents
		SET status = $2, updated_at = $3, done_at = $4, canceled_at = $5, version = version + 1
		WHERE id = $1 AND version = $6`,
		d.ID, string(d.Status), d.UpdatedAt, d.DoneAt, d.CanceledAt, d.Version,
	)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, d.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check document: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return &domain.ConcurrencyConflictError{Resource: "document " + d.ID, Reason: "versión obsoleta"}
	}
	d.Version++
	return nil
}

// List documentos filtrados, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var w where
	if f.Type != "" {
		w.add("type = ?", string(f.Type))
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.WarehouseID != "" {
		w.add("(warehouse_id = ? OR from_warehouse_id = ? OR to_warehouse_id = ?)", f.WarehouseID)
	}
	query := `SELECT ` + documentColumns + ` FROM documents` + w.sql() + ` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		query += " LIMIT " + w.arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + w.arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var (
		list []*entity.Document
		ids  []string
	)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.lines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		d.Lines = lines[d.ID]
	}
	return list, nil
}

// CountByType cuenta documentos por tipo en los estados dados (todos si la lista está vacía).
func (r *DocumentRepo) CountByType(ctx context.Context, f repository.PendingCountFilter) (map[entity.DocumentType]int64, error) {
	var w where
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		w.add("status = ANY(?)", statuses)
	}
	if f.WarehouseID != "" {
		w.add("(warehouse_id = ? OR from_warehouse_id = ? OR to_warehouse_id = ?)", f.WarehouseID)
	}
	rows, err := r.q.Query(ctx, `SELECT type, count(*) FROM documents`+w.sql()+` GROUP BY type`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.DocumentType]int64)
	for rows.Next() {
		var (
			t string
			n int64
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[entity.DocumentType(t)] = n
	}
	return out, rows.Err()
}

func (r *DocumentRepo) lines(ctx context.Context, ids []string) (map[string][]entity.DocumentLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT document_id, product_id, quantity, location_id, from_location_id, to_location_id,
			counted_quantity, system_quantity, unit_cost
		FROM document_lines WHERE document_id = ANY($1)
		ORDER BY document_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.DocumentLine, len(ids))
	for rows.Next() {
		var (
			docID         string
			l             entity.DocumentLine
			loc, from, to *string
			unitCost      *decimal.Decimal
		)
		if err := rows.Scan(&docID, &l.ProductID, &l.Quantity, &loc, &from, &to,
			&l.CountedQuantity, &l.SystemQuantity, &unitCost); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		l.LocationID, l.FromLocationID, l.ToLocationID = deref(loc), deref(from), deref(to)
		l.UnitCost = unitCost
		out[docID] = append(out[docID], l)
	}
	return out, rows.Err()
}
