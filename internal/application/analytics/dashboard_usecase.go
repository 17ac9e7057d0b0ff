// Package analytics contiene el agregador de KPIs del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// KPICache caché opcional de resultados por filtro. Un fallo de caché nunca falla la consulta.
//
// Get devuelve la generación vigente al momento de la lectura y Set guarda bajo
// esa misma generación: un resultado calculado antes de una invalidación nunca
// queda visible después de ella.
type KPICache interface {
	Get(ctx context.Context, key string) (kpis *dto.DashboardKPIsDTO, gen int64, hit bool, err error)
	Set(ctx context.Context, key string, gen int64, kpis *dto.DashboardKPIsDTO) error
}

// DashboardUseCase calcula los KPIs del dashboard. Solo lectura.
//
// Dos lecturas en paralelo:
//  1. índice de stock filtrado + productos (umbral y costo)
//  2. conteo de documentos por tipo
type DashboardUseCase struct {
	stockRepo        repository.StockRepository
	productRepo      repository.ProductRepository
	docRepo          repository.DocumentRepository
	defaultThreshold int64
	cache            KPICache
	group            singleflight.Group
	log              zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	docRepo repository.DocumentRepository,
	defaultThreshold int64,
	cache KPICache,
	log zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		stockRepo:        stockRepo,
		productRepo:      productRepo,
		docRepo:          docRepo,
		defaultThreshold: defaultThreshold,
		cache:            cache,
		log:              log.With().Str("component", "kpis").Logger(),
	}
}

// GetKPIs devuelve los indicadores para el filtro dado.
func (uc *DashboardUseCase) GetKPIs(ctx context.Context, in dto.KPIFilterRequest) (*dto.DashboardKPIsDTO, error) {
	docType, err := ParseDocumentType(in.DocumentType)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !entity.DocumentStatus(in.Status).Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}

	key := cacheKey(in, docType)
	var (
		gen       int64
		cacheable bool
	)
	if uc.cache != nil {
		cached, g, hit, err := uc.cache.Get(ctx, key)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Msg("caché de KPIs no disponible")
		case hit:
			return cached, nil
		default:
			gen, cacheable = g, true
		}
	}

	// Solo comparten cálculo las consultas que leyeron la misma generación.
	v, err, _ := uc.group.Do(key+"@"+strconv.FormatInt(gen, 10), func() (interface{}, error) {
		return uc.compute(ctx, in, docType)
	})
	if err != nil {
		return nil, err
	}
	kpis := v.(*dto.DashboardKPIsDTO)

	if cacheable {
		if err := uc.cache.Set(ctx, key, gen, kpis); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar KPIs en caché")
		}
	}
	return kpis, nil
}

func (uc *DashboardUseCase) compute(ctx context.Context, in dto.KPIFilterRequest, docType entity.DocumentType) (*dto.DashboardKPIsDTO, error) {
	var (
		out    dto.DashboardKPIsDTO
		counts map[entity.DocumentType]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		levels, err := uc.stockRepo.List(gctx, repository.StockFilter{
			WarehouseID: in.WarehouseID,
			LocationID:  in.LocationID,
			CategoryID:  in.CategoryID,
		})
		if err != nil {
			return fmt.Errorf("kpis: índice de stock: %w", err)
		}
		ids := make([]string, 0, len(levels))
		seen := make(map[string]bool, len(levels))
		for _, l := range levels {
			if !seen[l.ProductID] {
				seen[l.ProductID] = true
				ids = append(ids, l.ProductID)
			}
		}
		products, err := uc.productRepo.ListByIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("kpis: productos: %w", err)
		}
		byID := make(map[string]*entity.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		value := decimal.Zero
		for _, l := range levels {
			out.TotalProductsInStock += l.Quantity
			threshold := uc.defaultThreshold
			if p := byID[l.ProductID]; p != nil {
				if p.ReorderPoint > 0 {
					threshold = p.ReorderPoint
				}
				value = value.Add(p.Cost.Mul(decimal.NewFromInt(l.Quantity)))
			}
			switch {
			case l.Quantity == 0:
				out.OutOfStockItems++
			case l.Quantity <= threshold:
				out.LowStockItems++
			}
		}
		out.StockValue = value.Round(2)
		return nil
	})
	g.Go(func() error {
		statuses := entity.PendingStatuses
		if in.Status != "" {
			statuses = []entity.DocumentStatus{entity.DocumentStatus(in.Status)}
		}
		var err error
		counts, err = uc.docRepo.CountByType(gctx, repository.PendingCountFilter{
			Statuses:    statuses,
			WarehouseID: in.WarehouseID,
		})
		if err != nil {
			return fmt.Errorf("kpis: documentos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	include := func(t entity.DocumentType) bool { return docType == "" || docType == t }
	if include(entity.DocumentTypeReceipt) {
		out.PendingReceipts = counts[entity.DocumentTypeReceipt]
	}
	if include(entity.DocumentTypeDelivery) {
		out.PendingDeliveries = counts[entity.DocumentTypeDelivery]
	}
	if include(entity.DocumentTypeTransfer) {
		out.InternalTransfersScheduled = counts[entity.DocumentTypeTransfer]
	}
	return &out, nil
}

// ParseDocumentType acepta el nombre canónico o los alias usados por el frontend
// ("receipts", "delivery", "internal"). Vacío = sin filtro.
func ParseDocumentType(s string) (entity.DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "receipt", "receipts":
		return entity.DocumentTypeReceipt, nil
	case "delivery", "deliveries":
		return entity.DocumentTypeDelivery, nil
	case "internal", "internal transfer", "transfer", "transfers":
		return entity.DocumentTypeTransfer, nil
	case "adjustment", "adjustments":
		return entity.DocumentTypeAdjustment, nil
	}
	return "", domain.NewValidationError("document_type", "tipo de documento desconocido")
}

func cacheKey(in dto.KPIFilterRequest, docType entity.DocumentType) string {
	return strings.Join([]string{string(docType), in.Status, in.WarehouseID, in.LocationID, in.CategoryID}, "|")
}
