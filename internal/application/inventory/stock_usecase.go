package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// StockUseCase lecturas del índice de stock y reconstrucción desde el ledger.
type StockUseCase struct {
	txRunner    TxRunner
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, stockRepo repository.StockRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, stockRepo: stockRepo, productRepo: productRepo}
}

// GetLevel cantidad actual de la clave; 0 si nunca se ha visto.
func (uc *StockUseCase) GetLevel(ctx context.Context, key entity.StockKey) (*dto.StockLevelResponse, error) {
	if key.ProductID == "" || key.WarehouseID == "" {
		return nil, domain.NewValidationError("product_id", "product_id y warehouse_id son requeridos")
	}
	lvl, err := uc.stockRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.StockLevelResponse{
		ProductID:   lvl.ProductID,
		WarehouseID: lvl.WarehouseID,
		LocationID:  lvl.LocationID,
		Quantity:    lvl.Quantity,
		UpdatedAt:   lvl.UpdatedAt,
	}, nil
}

// List niveles del índice con el punto de reorden de cada producto.
func (uc *StockUseCase) List(ctx context.Context, filter repository.StockFilter) ([]dto.StockLevelResponse, error) {
	levels, err := uc.stockRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByIDs(ctx, productIDs(levels))
	if err != nil {
		return nil, err
	}
	reorder := make(map[string]int64, len(products))
	for _, p := range products {
		reorder[p.ID] = p.ReorderPoint
	}
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ProductID:    l.ProductID,
			WarehouseID:  l.WarehouseID,
			LocationID:   l.LocationID,
			Quantity:     l.Quantity,
			ReorderPoint: reorder[l.ProductID],
			UpdatedAt:    l.UpdatedAt,
		})
	}
	return out, nil
}

// Reconcile reconstruye el índice reproduciendo el ledger desde cero y lo compara con el vivo.
// Ambas lecturas comparten instantánea: un documento confirmado entre ellas no produce diferencias falsas.
func (uc *StockUseCase) Reconcile(ctx context.Context) (*inventory.ReconcileReport, error) {
	var report inventory.ReconcileReport
	err := uc.txRunner.RunReadOnly(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		_ repository.DocumentRepository,
		_ repository.ProductRepository,
	) error {
		entries, err := ledgerRepo.Query(ctx, repository.LedgerFilter{})
		if err != nil {
			return err
		}
		live, err := stockRepo.List(ctx, repository.StockFilter{})
		if err != nil {
			return err
		}
		report = inventory.Reconcile(live, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ToReconcileResponse adapta el reporte a la salida HTTP.
func ToReconcileResponse(r *inventory.ReconcileReport) *dto.ReconcileResponse {
	out := &dto.ReconcileResponse{
		Consistent:      r.Consistent(),
		EntriesReplayed: r.EntriesReplayed,
		KeysChecked:     r.KeysChecked,
		Mismatches:      make([]dto.StockMismatchDTO, 0, len(r.Mismatches)),
		ChainBreaks:     make([]dto.ChainBreakDTO, 0, len(r.ChainBreaks)),
	}
	for _, m := range r.Mismatches {
		out.Mismatches = append(out.Mismatches, dto.StockMismatchDTO{
			ProductID: m.Key.ProductID, WarehouseID: m.Key.WarehouseID, LocationID: m.Key.LocationID,
			Live: m.Live, Replayed: m.Replayed,
		})
	}
	for _, b := range r.ChainBreaks {
		out.ChainBreaks = append(out.ChainBreaks, dto.ChainBreakDTO{
			EntryID: b.EntryID, Seq: b.Seq, Expected: b.Expected, Recorded: b.Recorded,
		})
	}
	return out
}

func productIDs(levels []entity.StockLevel) []string {
	seen := make(map[string]bool, len(levels))
	ids := make([]string, 0, len(levels))
	for _, l := range levels {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}
