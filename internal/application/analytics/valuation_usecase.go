package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const (
	defaultTopN = 20
	maxTopN     = 200
)

var (
	hundred = decimal.NewFromInt(100)
	classA  = decimal.NewFromInt(80)
	classB  = decimal.NewFromInt(95)
)

// ValuationUseCase valoriza el stock a costo promedio ponderado y clasifica los SKUs (ABC):
//   - A: los SKUs que acumulan el primer 80% del valor.
//   - B: hasta el 95%.
//   - C: el resto, incluidos los SKUs sin valor.
type ValuationUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewValuationUseCase construye el caso de uso.
func NewValuationUseCase(stockRepo repository.StockRepository, productRepo repository.ProductRepository) *ValuationUseCase {
	return &ValuationUseCase{stockRepo: stockRepo, productRepo: productRepo}
}

// GetValuation calcula el valor del inventario para el filtro dado.
func (uc *ValuationUseCase) GetValuation(ctx context.Context, in dto.ValuationRequest) (*dto.ValuationDTO, error) {
	topN := in.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	levels, err := uc.stockRepo.List(ctx, repository.StockFilter{WarehouseID: in.WarehouseID, CategoryID: in.CategoryID})
	if err != nil {
		return nil, err
	}
	unitsByProduct := make(map[string]int64)
	unitsByWarehouse := make(map[[2]string]int64)
	for _, l := range levels {
		if l.Quantity <= 0 {
			continue
		}
		unitsByProduct[l.ProductID] += l.Quantity
		unitsByWarehouse[[2]string{l.WarehouseID, l.ProductID}] += l.Quantity
	}

	out := &dto.ValuationDTO{Warehouses: []dto.WarehouseValuationDTO{}, SKURanking: []dto.SKUValuationDTO{}}
	if len(unitsByProduct) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(unitsByProduct))
	for id := range unitsByProduct {
		ids = append(ids, id)
	}
	products, err := uc.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	costs := make(map[string]decimal.Decimal, len(products))
	ranking := make([]dto.SKUValuationDTO, 0, len(products))
	for _, p := range products {
		units := unitsByProduct[p.ID]
		value := p.Cost.Mul(decimal.NewFromInt(units))
		costs[p.ID] = p.Cost
		out.TotalUnits += units
		out.TotalValue = out.TotalValue.Add(value)
		ranking = append(ranking, dto.SKUValuationDTO{
			ProductID:   p.ID,
			SKU:         p.SKU,
			ProductName: p.Name,
			Units:       units,
			UnitCost:    p.Cost,
			Value:       value,
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if c := ranking[i].Value.Cmp(ranking[j].Value); c != 0 {
			return c > 0
		}
		return ranking[i].SKU < ranking[j].SKU
	})
	classify(ranking, out.TotalValue)
	for _, r := range ranking {
		if r.Class == "A" {
			out.ClassACount++
		}
	}
	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	out.SKURanking = ranking

	byWarehouse := make(map[string]*dto.WarehouseValuationDTO)
	for k, units := range unitsByWarehouse {
		cost, ok := costs[k[1]]
		if !ok {
			continue
		}
		w := byWarehouse[k[0]]
		if w == nil {
			w = &dto.WarehouseValuationDTO{WarehouseID: k[0]}
			byWarehouse[k[0]] = w
		}
		w.Units += units
		w.Value = w.Value.Add(cost.Mul(decimal.NewFromInt(units)))
	}
	for _, w := range byWarehouse {
		w.ValuePct = pct(w.Value, out.TotalValue)
		w.Value = w.Value.Round(2)
		out.Warehouses = append(out.Warehouses, *w)
	}
	sort.Slice(out.Warehouses, func(i, j int) bool { return out.Warehouses[i].WarehouseID < out.Warehouses[j].WarehouseID })

	out.TotalValue = out.TotalValue.Round(2)
	return out, nil
}

// classify asigna rango, participación y clase ABC sobre un ranking ya ordenado por valor.
// El SKU que cruza un umbral queda dentro de la clase que ese umbral cierra.
func classify(ranking []dto.SKUValuationDTO, total decimal.Decimal) {
	var cumulative decimal.Decimal
	for i := range ranking {
		r := &ranking[i]
		r.Rank = i + 1
		r.ValuePct = pct(r.Value, total)
		prev := cumulative
		cumulative = cumulative.Add(r.ValuePct)
		r.CumulativeValPct = cumulative.Round(2)
		r.Value = r.Value.Round(2)

		switch {
		case !r.Value.IsPositive():
			r.Class = "C"
		case prev.LessThan(classA) || i == 0:
			r.Class = "A"
		case prev.LessThan(classB):
			r.Class = "B"
		default:
			r.Class = "C"
		}
	}
}

func pct(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}
