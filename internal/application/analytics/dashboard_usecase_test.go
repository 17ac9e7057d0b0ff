package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]*dto.DashboardKPIsDTO
	gen  int64
	gets int
	sets []int64
}

func (c *mapCache) Get(_ context.Context, key string) (*dto.DashboardKPIsDTO, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, c.gen, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, gen int64, v *dto.DashboardKPIsDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets = append(c.sets, gen)
	if gen == c.gen {
		c.data[key] = v
	}
	return nil
}

type failingCache struct{ sets int }

func (*failingCache) Get(context.Context, string) (*dto.DashboardKPIsDTO, int64, bool, error) {
	return nil, 0, false, errors.New("redis caído")
}
func (c *failingCache) Set(context.Context, string, int64, *dto.DashboardKPIsDTO) error {
	c.sets++
	return errors.New("redis caído")
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "A", CategoryID: "tools", ReorderPoint: 10, Cost: decimal.NewFromInt(2)}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "B", CategoryID: "office", Cost: decimal.NewFromInt(5)}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p3", SKU: "C", CategoryID: "office"}))

	levels := []entity.StockLevel{
		{StockKey: entity.StockKey{ProductID: "p1", WarehouseID: "w1"}, Quantity: 8},  // bajo (reorden 10)
		{StockKey: entity.StockKey{ProductID: "p2", WarehouseID: "w1"}, Quantity: 20}, // normal (umbral 5)
		{StockKey: entity.StockKey{ProductID: "p3", WarehouseID: "w1"}, Quantity: 0},  // agotado
		{StockKey: entity.StockKey{ProductID: "p2", WarehouseID: "w2"}, Quantity: 3},  // bajo (umbral 5)
	}
	for i := range levels {
		require.NoError(t, s.Stock().Upsert(ctx, &levels[i]))
	}

	docs := []entity.Document{
		{ID: "r1", Type: entity.DocumentTypeReceipt, Status: entity.StatusDraft, WarehouseID: "w1"},
		{ID: "r2", Type: entity.DocumentTypeReceipt, Status: entity.StatusDone, WarehouseID: "w1"},
		{ID: "d1", Type: entity.DocumentTypeDelivery, Status: entity.StatusReady, WarehouseID: "w2"},
		{ID: "t1", Type: entity.DocumentTypeTransfer, Status: entity.StatusWaiting, FromWarehouseID: "w1", ToWarehouseID: "w2"},
		{ID: "t2", Type: entity.DocumentTypeTransfer, Status: entity.StatusCanceled, FromWarehouseID: "w2", ToWarehouseID: "w1"},
	}
	for i := range docs {
		docs[i].Version = 1
		require.NoError(t, s.Documents().Create(ctx, &docs[i]))
	}
	return s
}

func newUseCase(s *memory.Store, cache analytics.KPICache) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(s.Stock(), s.Products(), s.Documents(), 5, cache, zerolog.Nop())
}

func TestKPIs_SinFiltros(t *testing.T) {
	uc := newUseCase(seed(t), nil)

	k, err := uc.GetKPIs(context.Background(), dto.KPIFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(31), k.TotalProductsInStock)
	assert.Equal(t, int64(2), k.LowStockItems)
	assert.Equal(t, int64(1), k.OutOfStockItems)
	assert.Equal(t, int64(1), k.PendingReceipts)
	assert.Equal(t, int64(1), k.PendingDeliveries)
	assert.Equal(t, int64(1), k.InternalTransfersScheduled)
	// 8×2 + 20×5 + 3×5
	assert.True(t, k.StockValue.Equal(decimal.NewFromInt(131)), "got %s", k.StockValue)
}

func TestKPIs_FiltroBodegaYCategoria(t *testing.T) {
	uc := newUseCase(seed(t), nil)
	ctx := context.Background()

	k, err := uc.GetKPIs(ctx, dto.KPIFilterRequest{WarehouseID: "w2"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), k.TotalProductsInStock)
	assert.Equal(t, int64(1), k.LowStockItems)
	assert.Equal(t, int64(0), k.PendingReceipts)
	assert.Equal(t, int64(1), k.PendingDeliveries)
	assert.Equal(t, int64(1), k.InternalTransfersScheduled, "la transferencia t1 tiene destino w2")

	k, err = uc.GetKPIs(ctx, dto.KPIFilterRequest{CategoryID: "office"})
	require.NoError(t, err)
	assert.Equal(t, int64(23), k.TotalProductsInStock)
	assert.Equal(t, int64(1), k.OutOfStockItems)
}

func TestKPIs_FiltroTipoYEstado(t *testing.T) {
	uc := newUseCase(seed(t), nil)
	ctx := context.Background()

	k, err := uc.GetKPIs(ctx, dto.KPIFilterRequest{DocumentType: "receipts"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), k.PendingReceipts)
	assert.Zero(t, k.PendingDeliveries)
	assert.Zero(t, k.InternalTransfersScheduled)

	k, err = uc.GetKPIs(ctx, dto.KPIFilterRequest{Status: string(entity.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), k.PendingReceipts)
	assert.Zero(t, k.PendingDeliveries)

	_, err = uc.GetKPIs(ctx, dto.KPIFilterRequest{DocumentType: "invoices"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.GetKPIs(ctx, dto.KPIFilterRequest{Status: "Lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKPIs_UsaCache(t *testing.T) {
	s := seed(t)
	cache := &mapCache{data: map[string]*dto.DashboardKPIsDTO{}}
	uc := newUseCase(s, cache)
	ctx := context.Background()

	first, err := uc.GetKPIs(ctx, dto.KPIFilterRequest{})
	require.NoError(t, err)

	// Un cambio posterior no se ve mientras la entrada siga en caché.
	require.NoError(t, s.Stock().Upsert(ctx, &entity.StockLevel{StockKey: entity.StockKey{ProductID: "p1", WarehouseID: "w9"}, Quantity: 100}))
	second, err := uc.GetKPIs(ctx, dto.KPIFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, first.TotalProductsInStock, second.TotalProductsInStock)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, []int64{0}, cache.sets, "se guarda con la generación leída antes de calcular")
}

func TestKPIs_CacheCaidoNoFallaLaConsulta(t *testing.T) {
	c := &failingCache{}
	uc := newUseCase(seed(t), c)
	k, err := uc.GetKPIs(context.Background(), dto.KPIFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(31), k.TotalProductsInStock)
	assert.Zero(t, c.sets, "sin generación conocida no se guarda")
}

func TestParseDocumentType_Alias(t *testing.T) {
	cases := map[string]entity.DocumentType{
		"":                  "",
		"Receipt":           entity.DocumentTypeReceipt,
		"delivery":          entity.DocumentTypeDelivery,
		"Internal Transfer": entity.DocumentTypeTransfer,
		"internal":          entity.DocumentTypeTransfer,
	}
	for in, want := range cases {
		got, err := analytics.ParseDocumentType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
