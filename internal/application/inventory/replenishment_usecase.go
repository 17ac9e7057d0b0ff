package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición por bodega a partir del índice de stock.
type ReplenishmentUseCase struct {
	stockRepo        repository.StockRepository
	productRepo      repository.ProductRepository
	defaultThreshold int64
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
// defaultThreshold se usa para productos sin punto de reorden propio.
func NewReplenishmentUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	defaultThreshold int64,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		stockRepo:        stockRepo,
		productRepo:      productRepo,
		defaultThreshold: defaultThreshold,
	}
}

// GenerateReplenishmentList devuelve los productos en o bajo su punto de reorden por bodega,
// con la cantidad sugerida de pedido. warehouseID vacío = todas las bodegas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(
	ctx context.Context,
	warehouseID string,
) ([]dto.ReplenishmentSuggestionDTO, error) {

	// 1. Stock agregado por (producto, bodega); las ubicaciones se suman
	levels, err := uc.stockRepo.List(ctx, repository.StockFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	type pw struct{ product, warehouse string }
	totals := make(map[pw]int64)
	for _, l := range levels {
		totals[pw{l.ProductID, l.WarehouseID}] += l.Quantity
	}
	if len(totals) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Productos involucrados
	products, err := uc.productRepo.ListByIDs(ctx, productIDs(levels))
	if err != nil {
		return nil, err
	}

	// 3. Construir sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		reorder := p.ReorderPoint
		if reorder <= 0 {
			reorder = uc.defaultThreshold
		}
		for k, current := range totals {
			if k.product != p.ID || current > reorder {
				continue
			}
			ideal := reorder * 3 / 2
			suggested := ideal - current
			if suggested < 0 {
				suggested = 0
			}
			suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
				ProductID:          p.ID,
				SKU:                p.SKU,
				ProductName:        p.Name,
				WarehouseID:        k.warehouse,
				CurrentStock:       current,
				ReorderPoint:       reorder,
				IdealStock:         ideal,
				SuggestedOrderQty:  suggested,
				UnitCost:           p.Cost,
				EstimatedOrderCost: p.Cost.Mul(decimal.NewFromInt(suggested)),
			})
		}
	}

	// 4. Ordenar: primero agotados, luego mayor déficit relativo, luego SKU
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		ra := float64(a.ReorderPoint-a.CurrentStock) / float64(max(a.ReorderPoint, 1))
		rb := float64(b.ReorderPoint-b.CurrentStock) / float64(max(b.ReorderPoint, 1))
		if ra != rb {
			return ra > rb
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.WarehouseID < b.WarehouseID
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
