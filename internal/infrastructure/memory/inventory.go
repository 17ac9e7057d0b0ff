package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.StockRepository    = (*StockRepo)(nil)
	_ repository.LedgerRepository   = (*LedgerRepo)(nil)
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
)

// StockRepo índice de stock en memoria.
type StockRepo struct{ base }

func (r *StockRepo) Get(_ context.Context, key entity.StockKey) (*entity.StockLevel, error) {
	out := &entity.StockLevel{StockKey: key}
	r.read(func(st *state) {
		if l, ok := st.stock[key]; ok {
			*out = l
		}
	})
	return out, nil
}

// GetForUpdate igual que Get: la transacción ya tiene acceso exclusivo al estado.
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockLevel, error) {
	return r.Get(ctx, key)
}

func (r *StockRepo) Upsert(_ context.Context, level *entity.StockLevel) error {
	return r.write(func(st *state) error {
		st.stock[level.StockKey] = *level
		return nil
	})
}

func (r *StockRepo) List(_ context.Context, f repository.StockFilter) ([]entity.StockLevel, error) {
	var list []entity.StockLevel
	r.read(func(st *state) {
		for key, l := range st.stock {
			if f.ProductID != "" && key.ProductID != f.ProductID {
				continue
			}
			if f.WarehouseID != "" && key.WarehouseID != f.WarehouseID {
				continue
			}
			if f.LocationID != "" && key.LocationID != f.LocationID {
				continue
			}
			if f.CategoryID != "" && st.products[key.ProductID].CategoryID != f.CategoryID {
				continue
			}
			list = append(list, l)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].StockKey.Less(list[j].StockKey) })
	return list, nil
}

// LedgerRepo ledger append-only en memoria.
type LedgerRepo struct{ base }

func (r *LedgerRepo) Append(_ context.Context, entry *entity.LedgerEntry) error {
	return r.write(func(st *state) error {
		st.seq++
		entry.Seq = st.seq
		stored := *entry
		st.ledger = append(st.ledger, &stored)
		return nil
	})
}

func (r *LedgerRepo) Query(_ context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	r.read(func(st *state) {
		for _, e := range st.ledger {
			if f.ProductID != "" && e.ProductID != f.ProductID {
				continue
			}
			if f.WarehouseID != "" && e.WarehouseID != f.WarehouseID {
				continue
			}
			if f.LocationID != "" && e.LocationID != f.LocationID {
				continue
			}
			if f.DocumentType != "" && e.DocumentType != f.DocumentType {
				continue
			}
			if f.DocumentID != "" && e.DocumentID != f.DocumentID {
				continue
			}
			cp := *e
			list = append(list, &cp)
		}
	})
	if f.Descending {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}
	return page(list, f.Limit, f.Offset), nil
}

// DocumentRepo documentos en memoria con control de versión.
type DocumentRepo struct{ base }

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	return r.write(func(st *state) error {
		if _, ok := st.documents[doc.ID]; ok {
			return domain.ErrDuplicate
		}
		st.documents[doc.ID] = copyDocument(*doc)
		st.docOrder = append(st.docOrder, doc.ID)
		return nil
	})
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	r.read(func(st *state) {
		if d, ok := st.documents[id]; ok {
			d = copyDocument(d)
			out = &d
		}
	})
	return out, nil
}

func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *DocumentRepo) UpdateStatus(_ context.Context, doc *entity.Document) error {
	return r.write(func(st *state) error {
		stored, ok := st.documents[doc.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if stored.Version != doc.Version {
			return &domain.ConcurrencyConflictError{Resource: "document " + doc.ID, Reason: "versión obsoleta"}
		}
		stored.Status = doc.Status
		stored.UpdatedAt = doc.UpdatedAt
		stored.DoneAt = doc.DoneAt
		stored.CanceledAt = doc.CanceledAt
		stored.Lines = append([]entity.DocumentLine(nil), doc.Lines...)
		stored.Version++
		st.documents[doc.ID] = stored
		doc.Version = stored.Version
		return nil
	})
}

func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var list []*entity.Document
	r.read(func(st *state) {
		for i := len(st.docOrder) - 1; i >= 0; i-- {
			d := st.documents[st.docOrder[i]]
			if f.Type != "" && d.Type != f.Type {
				continue
			}
			if f.Status != "" && d.Status != f.Status {
				continue
			}
			if f.WarehouseID != "" && !touchesWarehouse(&d, f.WarehouseID) {
				continue
			}
			d = copyDocument(d)
			list = append(list, &d)
		}
	})
	return page(list, f.Limit, f.Offset), nil
}

func (r *DocumentRepo) CountByType(_ context.Context, f repository.PendingCountFilter) (map[entity.DocumentType]int64, error) {
	counts := make(map[entity.DocumentType]int64)
	r.read(func(st *state) {
		for _, d := range st.documents {
			if len(f.Statuses) > 0 && !containsStatus(f.Statuses, d.Status) {
				continue
			}
			if f.WarehouseID != "" && !touchesWarehouse(&d, f.WarehouseID) {
				continue
			}
			counts[d.Type]++
		}
	})
	return counts, nil
}

func touchesWarehouse(d *entity.Document, warehouseID string) bool {
	return d.WarehouseID == warehouseID || d.FromWarehouseID == warehouseID || d.ToWarehouseID == warehouseID
}

func containsStatus(list []entity.DocumentStatus, s entity.DocumentStatus) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
