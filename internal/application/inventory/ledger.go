package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const maxLedgerPage = 1000

// AppendEntry asienta un cambio en el ledger dentro de la transacción del llamador:
// bloquea la clave (SELECT FOR UPDATE), aplica el delta al índice y persiste la entrada.
// Cada llamada modifica exactamente una fila del índice.
func AppendEntry(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	draft entity.LedgerDraft,
	allowNegative bool,
	now time.Time,
) (*entity.LedgerEntry, error) {
	level, err := stockRepo.GetForUpdate(ctx, draft.Key)
	if err != nil {
		return nil, err
	}
	next, err := inventory.ApplyDelta(draft.Key, level.Quantity, draft.ChangeQuantity, allowNegative)
	if err != nil {
		return nil, err
	}
	level.Quantity = next
	level.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, level); err != nil {
		return nil, err
	}

	e := &entity.LedgerEntry{
		ID:             uuid.New().String(),
		ProductID:      draft.Key.ProductID,
		WarehouseID:    draft.Key.WarehouseID,
		LocationID:     draft.Key.LocationID,
		ChangeQuantity: draft.ChangeQuantity,
		NewStockLevel:  next,
		DocumentType:   draft.DocumentType,
		DocumentID:     draft.DocumentID,
		UnitCost:       draft.UnitCost,
		CreatedBy:      draft.CreatedBy,
		Timestamp:      now,
	}
	if err := ledgerRepo.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// LedgerUseCase consultas de solo lectura sobre el ledger.
type LedgerUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(ledgerRepo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// Query lista entradas filtradas en orden de inserción (o inverso con order=desc).
func (uc *LedgerUseCase) Query(ctx context.Context, in dto.LedgerQueryRequest) (*dto.LedgerListResponse, error) {
	if in.DocumentType != "" && !entity.DocumentType(in.DocumentType).Valid() {
		return nil, domain.NewValidationError("document_type", "tipo de documento desconocido")
	}
	if in.Skip < 0 {
		in.Skip = 0
	}
	if in.Limit <= 0 {
		in.Limit = 100
	}
	if in.Limit > maxLedgerPage {
		in.Limit = maxLedgerPage
	}
	entries, err := uc.ledgerRepo.Query(ctx, repository.LedgerFilter{
		ProductID:    in.ProductID,
		WarehouseID:  in.WarehouseID,
		LocationID:   in.LocationID,
		DocumentType: entity.DocumentType(in.DocumentType),
		DocumentID:   in.DocumentID,
		Descending:   strings.EqualFold(in.Order, "desc"),
		Limit:        in.Limit,
		Offset:       in.Skip,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LedgerListResponse{
		Items: toLedgerResponses(entries),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Skip},
	}, nil
}

func toLedgerResponses(entries []*entity.LedgerEntry) []dto.LedgerEntryResponse {
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:             e.ID,
			Seq:            e.Seq,
			ProductID:      e.ProductID,
			WarehouseID:    e.WarehouseID,
			LocationID:     e.LocationID,
			ChangeQuantity: e.ChangeQuantity,
			NewStockLevel:  e.NewStockLevel,
			DocumentType:   string(e.DocumentType),
			DocumentID:     e.DocumentID,
			UnitCost:       e.UnitCost,
			CreatedBy:      e.CreatedBy,
			Timestamp:      e.Timestamp,
		})
	}
	return out
}
