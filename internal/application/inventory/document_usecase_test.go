package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

const (
	prodA    = "prod-a"
	prodB    = "prod-b"
	whMain   = "wh-main"
	whSecond = "wh-second"
	locShelf = "loc-shelf"
	supplier = "sup-abc"
)

var sess = inventory.Session{UserID: "user-1", Role: entity.RoleManager}

type countingNotifier struct{ n atomic.Int32 }

func (c *countingNotifier) InventoryChanged(context.Context) { c.n.Add(1) }

type fixture struct {
	store    *memory.Store
	docs     *inventory.DocumentUseCase
	stock    *inventory.StockUseCase
	ledger   *inventory.LedgerUseCase
	notifier *countingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: prodA, Name: "Steel Rod", SKU: "SR-001", UnitOfMeasure: "unit", Cost: decimal.NewFromInt(10)}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: prodB, Name: "Office Chair", SKU: "OC-001", UnitOfMeasure: "unit"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: whMain, Name: "Main Warehouse"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: whSecond, Name: "Production Floor"}))
	require.NoError(t, s.Warehouses().AddLocation(ctx, &entity.Location{ID: locShelf, WarehouseID: whMain, Name: "Rack A"}))
	require.NoError(t, s.Suppliers().Create(ctx, &entity.Supplier{ID: supplier, Name: "ABC Suppliers"}))

	n := &countingNotifier{}
	docs := inventory.NewDocumentUseCase(s, s.Documents(), s.Products(), s.Warehouses(), s.Suppliers(),
		inventory.DocumentConfig{Notifier: n}, zerolog.Nop())
	return &fixture{
		store:    s,
		docs:     docs,
		stock:    inventory.NewStockUseCase(s, s.Stock(), s.Products()),
		ledger:   inventory.NewLedgerUseCase(s.Ledger()),
		notifier: n,
	}
}

func (f *fixture) level(t *testing.T, product, warehouse string) int64 {
	t.Helper()
	lvl, err := f.stock.GetLevel(context.Background(), entity.StockKey{ProductID: product, WarehouseID: warehouse})
	require.NoError(t, err)
	return lvl.Quantity
}

func (f *fixture) entries(t *testing.T) []dto.LedgerEntryResponse {
	t.Helper()
	out, err := f.ledger.Query(context.Background(), dto.LedgerQueryRequest{Limit: 1000})
	require.NoError(t, err)
	return out.Items
}

// receive crea y valida una recepción de qty unidades del producto en la bodega.
func (f *fixture) receive(t *testing.T, product, warehouse string, qty int64) {
	t.Helper()
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: warehouse,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: product, QuantityReceived: qty}},
	}))
	require.NoError(t, err)
	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.NoError(t, err)
}

func (f *fixture) assertReplayConsistent(t *testing.T) {
	t.Helper()
	report, err := f.stock.Reconcile(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent(), "el índice debe coincidir con la reproducción del ledger: %+v", report)
}

// Escenario A: recepción de 50 unidades.
func TestDocument_RecepcionValidadaSumaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 50}},
	}))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDraft), doc.Status)
	assert.Empty(t, f.entries(t), "crear no asienta en el ledger")

	done, err := f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDone), done.Status)
	require.NotNil(t, done.DoneAt)

	assert.Equal(t, int64(50), f.level(t, prodA, whMain))
	entries := f.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(50), entries[0].ChangeQuantity)
	assert.Equal(t, int64(50), entries[0].NewStockLevel)
	assert.Equal(t, string(entity.DocumentTypeReceipt), entries[0].DocumentType)
	assert.Equal(t, doc.ID, entries[0].DocumentID)
	assert.Equal(t, int32(2), f.notifier.n.Load(), "crear y validar avisan cada uno")
	f.assertReplayConsistent(t)
}

func TestDocument_CambiosSinLedgerTambienAvisan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 5}},
	}))
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.notifier.n.Load())

	_, err = f.docs.ChangeStatus(ctx, sess, entity.DocumentTypeReceipt, doc.ID, entity.StatusWaiting)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.notifier.n.Load())

	_, err = f.docs.Cancel(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.notifier.n.Load())

	_, err = f.docs.Cancel(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.Error(t, err)
	assert.Equal(t, int32(3), f.notifier.n.Load(), "una transición rechazada no avisa")
}

// Escenario B: entrega de 20 con 50 disponibles.
func TestDocument_EntregaValidadaRestaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 50)

	doc, err := f.docs.Create(ctx, sess, inventory.DeliveryInput(dto.CreateDeliveryRequest{
		WarehouseID:   whMain,
		DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 20}},
	}))
	require.NoError(t, err)
	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(30), f.level(t, prodA, whMain))
	entries := f.entries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(-20), entries[1].ChangeQuantity)
	assert.Equal(t, int64(30), entries[1].NewStockLevel)
	f.assertReplayConsistent(t)
}

// Escenario C: transferencia de 10 entre bodegas.
func TestDocument_TransferenciaMueveStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 50)

	doc, err := f.docs.Create(ctx, sess, inventory.TransferInput(dto.CreateTransferRequest{
		FromWarehouseID: whMain, ToWarehouseID: whSecond,
		TransferItems: []dto.TransferItemRequest{{ProductID: prodA, Quantity: 10}},
	}))
	require.NoError(t, err)
	done, err := f.docs.Complete(ctx, sess, doc.ID)
	require.NoError(t, err)
	require.Len(t, done.LedgerEntries, 2)

	assert.Equal(t, int64(40), f.level(t, prodA, whMain))
	assert.Equal(t, int64(10), f.level(t, prodA, whSecond))
	assert.Equal(t, int64(-10), done.LedgerEntries[0].ChangeQuantity)
	assert.Equal(t, whMain, done.LedgerEntries[0].WarehouseID)
	assert.Equal(t, int64(10), done.LedgerEntries[1].ChangeQuantity)
	assert.Equal(t, whSecond, done.LedgerEntries[1].WarehouseID)
	f.assertReplayConsistent(t)
}

// Escenario D: conteo físico de 45 con 50 registrados.
func TestDocument_AjusteFijaConteoFisico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 50)

	doc, err := f.docs.Create(ctx, sess, inventory.AdjustmentInput(dto.CreateAdjustmentRequest{
		WarehouseID: whMain, Reason: "conteo cíclico",
		AdjustmentItems: []dto.AdjustmentItemRequest{{ProductID: prodA, CountedQuantity: 45}},
	}))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDone), doc.Status, "los ajustes se aplican al crearse")
	require.Len(t, doc.Items, 1)
	require.NotNil(t, doc.Items[0].SystemQuantity)
	assert.Equal(t, int64(50), *doc.Items[0].SystemQuantity)

	assert.Equal(t, int64(45), f.level(t, prodA, whMain))
	require.Len(t, doc.LedgerEntries, 1)
	assert.Equal(t, int64(-5), doc.LedgerEntries[0].ChangeQuantity)
	assert.Equal(t, int64(45), doc.LedgerEntries[0].NewStockLevel)
	f.assertReplayConsistent(t)
}

func TestDocument_AjusteSinDiferenciaAsientaCero(t *testing.T) {
	f := newFixture(t)
	f.receive(t, prodA, whMain, 7)

	doc, err := f.docs.Create(context.Background(), sess, inventory.AdjustmentInput(dto.CreateAdjustmentRequest{
		WarehouseID:     whMain,
		AdjustmentItems: []dto.AdjustmentItemRequest{{ProductID: prodA, CountedQuantity: 7}},
	}))
	require.NoError(t, err)
	require.Len(t, doc.LedgerEntries, 1)
	assert.Equal(t, int64(0), doc.LedgerEntries[0].ChangeQuantity)
	assert.Equal(t, int64(7), f.level(t, prodA, whMain))
}

func TestDocument_ValidarDosVecesNoDuplicaEntradas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 5}},
	}))
	require.NoError(t, err)
	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.NoError(t, err)

	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.Error(t, err)
	var ist *domain.InvalidStateTransitionError
	require.True(t, errors.As(err, &ist))
	assert.Equal(t, string(entity.StatusDone), ist.From)

	_, err = f.docs.Cancel(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "un documento Done no se cancela")

	assert.Len(t, f.entries(t), 1)
	assert.Equal(t, int64(5), f.level(t, prodA, whMain))
}

func TestDocument_CrearYCancelarNoTocaElLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 10)
	before := f.entries(t)

	doc, err := f.docs.Create(ctx, sess, inventory.DeliveryInput(dto.CreateDeliveryRequest{
		WarehouseID:   whMain,
		DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 4}},
	}))
	require.NoError(t, err)
	canceled, err := f.docs.Cancel(ctx, sess, entity.DocumentTypeDelivery, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCanceled), canceled.Status)
	assert.NotNil(t, canceled.CanceledAt)

	assert.Equal(t, before, f.entries(t))
	assert.Equal(t, int64(10), f.level(t, prodA, whMain))

	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestDocument_EntregaEnElLimiteDelStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 5)

	over, err := f.docs.Create(ctx, sess, inventory.DeliveryInput(dto.CreateDeliveryRequest{
		WarehouseID:   whMain,
		DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 6}},
	}))
	require.NoError(t, err)
	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, over.ID)
	require.Error(t, err)
	var ins *domain.InsufficientStockError
	require.True(t, errors.As(err, &ins))
	assert.Equal(t, int64(1), ins.Deficit())
	assert.Equal(t, prodA, ins.ProductID)
	assert.Equal(t, whMain, ins.WarehouseID)

	assert.Equal(t, int64(5), f.level(t, prodA, whMain), "el fallo no modifica el stock")
	assert.Len(t, f.entries(t), 1)
	stored, err := f.docs.Get(ctx, entity.DocumentTypeDelivery, over.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDraft), stored.Status)

	exact, err := f.docs.Create(ctx, sess, inventory.DeliveryInput(dto.CreateDeliveryRequest{
		WarehouseID:   whMain,
		DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 5}},
	}))
	require.NoError(t, err)
	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, exact.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.level(t, prodA, whMain))
	f.assertReplayConsistent(t)
}

func TestDocument_EntregaAgregaLineasDelMismoProducto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 5)

	doc, err := f.docs.Create(ctx, sess, inventory.DeliveryInput(dto.CreateDeliveryRequest{
		WarehouseID: whMain,
		DeliveryItems: []dto.DeliveryItemRequest{
			{ProductID: prodA, QuantityDelivered: 3},
			{ProductID: prodA, QuantityDelivered: 3},
		},
	}))
	require.NoError(t, err)
	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), f.level(t, prodA, whMain))
}

func TestDocument_TransferenciaEsTodoONada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 10)
	f.receive(t, prodB, whMain, 2)
	before := f.entries(t)

	doc, err := f.docs.Create(ctx, sess, inventory.TransferInput(dto.CreateTransferRequest{
		FromWarehouseID: whMain, ToWarehouseID: whSecond,
		TransferItems: []dto.TransferItemRequest{
			{ProductID: prodA, Quantity: 10},
			{ProductID: prodB, Quantity: 3},
		},
	}))
	require.NoError(t, err)
	_, err = f.docs.Complete(ctx, sess, doc.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.level(t, prodA, whMain))
	assert.Equal(t, int64(0), f.level(t, prodA, whSecond))
	assert.Equal(t, int64(2), f.level(t, prodB, whMain))
	assert.Equal(t, before, f.entries(t))
	f.assertReplayConsistent(t)
}

func TestDocument_ValidacionesDeEntrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		in       inventory.DocumentInput
		notFound bool
	}{
		{"sin líneas", inventory.DocumentInput{Type: entity.DocumentTypeDelivery, WarehouseID: whMain}, false},
		{"cantidad cero", inventory.DeliveryInput(dto.CreateDeliveryRequest{
			WarehouseID: whMain, DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA}},
		}), false},
		{"conteo negativo", inventory.AdjustmentInput(dto.CreateAdjustmentRequest{
			WarehouseID: whMain, AdjustmentItems: []dto.AdjustmentItemRequest{{ProductID: prodA, CountedQuantity: -1}},
		}), false},
		{"misma bodega origen y destino", inventory.TransferInput(dto.CreateTransferRequest{
			FromWarehouseID: whMain, ToWarehouseID: whMain,
			TransferItems: []dto.TransferItemRequest{{ProductID: prodA, Quantity: 1}},
		}), false},
		{"estado inicial terminal", inventory.DocumentInput{
			Type: entity.DocumentTypeDelivery, WarehouseID: whMain, Status: entity.StatusDone,
			Lines: []inventory.LineInput{{ProductID: prodA, Quantity: 1}},
		}, false},
		{"producto inexistente", inventory.DeliveryInput(dto.CreateDeliveryRequest{
			WarehouseID: whMain, DeliveryItems: []dto.DeliveryItemRequest{{ProductID: "nope", QuantityDelivered: 1}},
		}), true},
		{"bodega inexistente", inventory.DeliveryInput(dto.CreateDeliveryRequest{
			WarehouseID: "nope", DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 1}},
		}), true},
		{"proveedor inexistente", inventory.ReceiptInput(dto.CreateReceiptRequest{
			SupplierID: "nope", WarehouseID: whMain,
			ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 1}},
		}), true},
		{"ubicación de otra bodega", inventory.DeliveryInput(dto.CreateDeliveryRequest{
			WarehouseID: whSecond, DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 1, LocationID: locShelf}},
		}), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.docs.Create(ctx, sess, tc.in)
			require.Error(t, err)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "se esperaba ValidationError, got %v", err)
			if tc.notFound {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}

	list, err := f.docs.List(ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "las entradas inválidas no persisten documentos")
}

func TestDocument_SinSesionNoAutorizado(t *testing.T) {
	f := newFixture(t)
	_, err := f.docs.Create(context.Background(), inventory.Session{}, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 1}},
	}))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDocument_TipoIncorrectoEnRutaEsNoEncontrado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 1}},
	}))
	require.NoError(t, err)

	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.docs.Complete(ctx, sess, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.docs.Get(ctx, entity.DocumentTypeTransfer, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocument_CambioDeEstadoIntermedio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain, Status: string(entity.StatusWaiting),
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 1}},
	}))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusWaiting), doc.Status)

	ready, err := f.docs.ChangeStatus(ctx, sess, entity.DocumentTypeReceipt, doc.ID, entity.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusReady), ready.Status)

	_, err = f.docs.ChangeStatus(ctx, sess, entity.DocumentTypeReceipt, doc.ID, entity.StatusWaiting)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "no se retrocede de Ready a Waiting")

	_, err = f.docs.ChangeStatus(ctx, sess, entity.DocumentTypeReceipt, doc.ID, entity.StatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, f.entries(t)[0].LocationID)
}

func TestDocument_RecepcionConCostoActualizaPromedio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 10) // 10 unidades al costo vigente de 10

	cost := decimal.NewFromInt(40)
	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 10, UnitCost: &cost}},
	}))
	require.NoError(t, err)
	done, err := f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
	require.NoError(t, err)
	assert.True(t, done.LedgerEntries[0].UnitCost.Equal(cost))

	p, err := f.store.Products().GetByID(ctx, prodA)
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(25)), "costo promedio: got %s", p.Cost)
}

func TestDocument_ValidacionConcurrenteAsientaUnaVez(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, err := f.docs.Create(ctx, sess, inventory.ReceiptInput(dto.CreateReceiptRequest{
		SupplierID: supplier, WarehouseID: whMain,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: prodA, QuantityReceived: 3}},
	}))
	require.NoError(t, err)

	const workers = 8
	var (
		wg      sync.WaitGroup
		ok      atomic.Int32
		invalid atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.docs.Validate(ctx, sess, entity.DocumentTypeReceipt, doc.ID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInvalidStateTransition):
				invalid.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), invalid.Load())
	assert.Equal(t, int64(3), f.level(t, prodA, whMain))
	assert.Len(t, f.entries(t), 1)
}

func TestDocument_EntregasConcurrentesNoDejanStockNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 10)

	ids := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		doc, err := f.docs.Create(ctx, sess, inventory.DeliveryInput(dto.CreateDeliveryRequest{
			WarehouseID:   whMain,
			DeliveryItems: []dto.DeliveryItemRequest{{ProductID: prodA, QuantityDelivered: 3}},
		}))
		require.NoError(t, err)
		ids = append(ids, doc.ID)
	}

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := f.docs.Validate(ctx, sess, entity.DocumentTypeDelivery, id); err == nil {
				ok.Add(1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(3), ok.Load(), "solo caben 3 entregas de 3 en 10 unidades")
	assert.Equal(t, int64(1), f.level(t, prodA, whMain))
	f.assertReplayConsistent(t)
}

func TestDocument_ListaFiltraPorTipoYBodega(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.receive(t, prodA, whMain, 10)
	_, err := f.docs.Create(ctx, sess, inventory.TransferInput(dto.CreateTransferRequest{
		FromWarehouseID: whMain, ToWarehouseID: whSecond,
		TransferItems: []dto.TransferItemRequest{{ProductID: prodA, Quantity: 1}},
	}))
	require.NoError(t, err)

	transfers, err := f.docs.List(ctx, repository.DocumentFilter{Type: entity.DocumentTypeTransfer, WarehouseID: whSecond})
	require.NoError(t, err)
	assert.Len(t, transfers.Items, 1)

	done, err := f.docs.List(ctx, repository.DocumentFilter{Status: entity.StatusDone})
	require.NoError(t, err)
	require.Len(t, done.Items, 1)
	assert.Equal(t, string(entity.DocumentTypeReceipt), done.Items[0].Type)

	_, err = f.docs.List(ctx, repository.DocumentFilter{Status: "Bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// commitDuringSnapshot confirma un documento después de abrir la instantánea
// de solo lectura y antes de la primera lectura.
type commitDuringSnapshot struct {
	*memory.Store
	commit func()
}

func (r *commitDuringSnapshot) RunReadOnly(ctx context.Context, fn inventory.TxFunc) error {
	return r.Store.RunReadOnly(ctx, func(l repository.LedgerRepository, st repository.StockRepository, d repository.DocumentRepository, p repository.ProductRepository) error {
		if r.commit != nil {
			r.commit()
			r.commit = nil
		}
		return fn(l, st, d, p)
	})
}

func TestStock_ReconcileNoVeCommitsConcurrentes(t *testing.T) {
	f := newFixture(t)
	f.receive(t, prodA, whMain, 50)

	committed := false
	runner := &commitDuringSnapshot{Store: f.store, commit: func() {
		f.receive(t, prodA, whMain, 7)
		committed = true
	}}
	report, err := inventory.NewStockUseCase(runner, f.store.Stock(), f.store.Products()).Reconcile(context.Background())
	require.NoError(t, err)
	require.True(t, committed)
	assert.True(t, report.Consistent(), "ledger e índice salen de la misma instantánea: %+v", report)
	assert.Equal(t, 1, report.EntriesReplayed)

	assert.Equal(t, int64(57), f.level(t, prodA, whMain))
	f.assertReplayConsistent(t)
}
