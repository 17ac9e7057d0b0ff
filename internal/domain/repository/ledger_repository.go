package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// LedgerFilter filtros de consulta del ledger. Limit 0 = sin límite.
type LedgerFilter struct {
	ProductID    string
	WarehouseID  string
	LocationID   string
	DocumentType entity.DocumentType
	DocumentID   string
	Descending   bool
	Limit        int
	Offset       int
}

// LedgerRepository puerto del ledger append-only. No existe actualización ni borrado.
type LedgerRepository interface {
	// Append persiste la entrada y asigna Seq.
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// Query devuelve las entradas en orden de inserción (Seq ascendente salvo Descending).
	Query(ctx context.Context, filter LedgerFilter) ([]*entity.LedgerEntry, error)
}
