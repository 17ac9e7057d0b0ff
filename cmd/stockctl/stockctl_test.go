package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/stockmaster-api/internal/app"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

func newTestServices(t *testing.T) (*app.Storage, *app.Services) {
	t.Helper()
	c := &config.Config{
		App: config.AppConfig{Name: "stockmaster"},
		JWT: config.JWTConfig{Secret: "secreto-de-prueba", Expiration: 30, Issuer: "stockmaster"},
		Inventory: config.InventoryConfig{
			StorageDriver:            config.StorageMemory,
			DefaultLowStockThreshold: 10,
			LockTimeout:              time.Second,
		},
	}
	st := app.MemoryStorage(memory.NewStore())
	return st, app.NewServices(c, st, app.Options{}, zerolog.Nop())
}

func TestSeed_Idempotente(t *testing.T) {
	ctx := context.Background()
	st, svc := newTestServices(t)

	first, err := seedData(ctx, st, svc, true)
	require.NoError(t, err)
	assert.Equal(t, len(seedUsers), first.Users)
	assert.Equal(t, len(seedCategories), first.Categories)
	assert.Equal(t, 1, first.Suppliers)
	assert.Equal(t, 1, first.Warehouses)
	assert.Equal(t, len(seedLocations), first.Locations)
	assert.Equal(t, len(seedProducts), first.Products)
	assert.NotEmpty(t, first.ReceiptID)

	second, err := seedData(ctx, st, svc, true)
	require.NoError(t, err)
	assert.Equal(t, seedResult{}, *second)

	// La recepción de apertura dejó el stock en el índice y el ledger cuadra
	levels, err := svc.Stock.List(ctx, repository.StockFilter{})
	require.NoError(t, err)
	var total int64
	for _, l := range levels {
		total += l.Quantity
	}
	var want int64
	for _, p := range seedProducts {
		want += p.Opening
	}
	assert.Equal(t, want, total)

	rep, err := svc.Stock.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, rep.Consistent())
}

func TestSeed_SinStockNoAsientaLedger(t *testing.T) {
	ctx := context.Background()
	st, svc := newTestServices(t)

	res, err := seedData(ctx, st, svc, false)
	require.NoError(t, err)
	assert.Empty(t, res.ReceiptID)

	levels, err := svc.Stock.List(ctx, repository.StockFilter{})
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestImportCatalog_Latin1ConPuntoYComa(t *testing.T) {
	ctx := context.Background()
	st, svc := newTestServices(t)

	src := "sku_code;name;category;unit_of_measure;reorder_point\n" +
		"HER-001;Martillo de uña;Herramientas;unidad;5\n" +
		"HER-002;Llave inglesa;Herramientas;unidad;\n" +
		"PAP-001;Cuaderno pequeño;Papelería;caja;20\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	opts, err := newImportOptions("latin1", ";")
	require.NoError(t, err)

	res, err := importCatalog(ctx, st, svc, strings.NewReader(encoded), opts)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 2, res.Categories)

	p, err := st.Products.GetBySKU(ctx, "HER-001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Martillo de uña", p.Name)
	assert.Equal(t, int64(5), p.ReorderPoint)

	cat, err := st.Categories.GetByName(ctx, "Papelería")
	require.NoError(t, err)
	assert.NotNil(t, cat)

	// Reimportar no duplica
	again, err := importCatalog(ctx, st, svc, strings.NewReader(encoded), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 3, again.Skipped)
	assert.Equal(t, 0, again.Categories)
}

func TestImportCatalog_FilasInvalidasNoDetienenElResto(t *testing.T) {
	ctx := context.Background()
	st, svc := newTestServices(t)

	src := "sku_code,name,category,reorder_point\n" +
		"A-1,Producto A,General,x\n" +
		",Sin SKU,General,1\n" +
		"A-2,Producto B,General,3\n"
	opts, err := newImportOptions("utf-8", ",")
	require.NoError(t, err)

	res, err := importCatalog(ctx, st, svc, strings.NewReader(src), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "fila 2")
	assert.Contains(t, res.Errors[1], "fila 3")
}

func TestImportCatalog_FaltaColumna(t *testing.T) {
	st, svc := newTestServices(t)
	opts, err := newImportOptions("", ",")
	require.NoError(t, err)

	_, err = importCatalog(context.Background(), st, svc, strings.NewReader("sku_code,name\nA,B\n"), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestNewImportOptions_Invalidas(t *testing.T) {
	_, err := newImportOptions("ebcdic", ",")
	assert.Error(t, err)
	_, err = newImportOptions("utf-8", ";;")
	assert.Error(t, err)
}

func TestRootCmd_Subcomandos(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "ledger", "catalog"})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "stockctl")
}
