package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
)

type apiFixture struct {
	app     *fiber.App
	inbox   *otpInbox
	admin   string
	manager string
	staff   string
}

// otpInbox recibe los OTP de restablecimiento en lugar del correo.
type otpInbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (b *otpInbox) SendOTP(_ context.Context, email, code string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.codes[email] = code
	return nil
}

func (b *otpInbox) code(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.codes[email]
}

// newAPI arma la API completa sobre el store en memoria con un admin, un manager y un operario.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memory.NewStore()
	log := zerolog.Nop()

	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}
	authUC := auth.NewAuthUseCase(s.Users(), jwtCfg)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	inbox := &otpInbox{codes: map[string]string{}}
	resetUC := auth.NewPasswordResetUseCase(s.Users(), cache.NewOTPStore(rdb, auth.OTPTTL, auth.OTPCooldown), inbox, jwtCfg, log)
	docUC := inventory.NewDocumentUseCase(s, s.Documents(), s.Products(), s.Warehouses(), s.Suppliers(), inventory.DocumentConfig{}, log)

	app := apphttp.NewApp("stockmaster-test", log)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		PasswordReset: resetUC,
		UserUC:        usecase.NewUserUseCase(s.Users()),
		ProductUC:     usecase.NewProductUseCase(s.Products(), s.Categories(), nil),
		CatalogUC:     usecase.NewCatalogUseCase(s.Categories(), s.Suppliers()),
		WarehouseUC:   usecase.NewWarehouseUseCase(s.Warehouses()),
		DocumentUC:    docUC,
		DocumentPDF:   inventory.NewDocumentPDFUseCase(s.Documents(), s.Products(), s.Warehouses(), s.Suppliers(), infrapdf.NewMarotoPDFGenerator("Test")),
		LedgerUC:      inventory.NewLedgerUseCase(s.Ledger()),
		StockUC:       inventory.NewStockUseCase(s, s.Stock(), s.Products()),
		Replenishment: inventory.NewReplenishmentUseCase(s.Stock(), s.Products(), 10),
		DashboardUC:   analytics.NewDashboardUseCase(s.Stock(), s.Products(), s.Documents(), 10, nil, log),
		ValuationUC:   analytics.NewValuationUseCase(s.Stock(), s.Products()),
		JWTSecret:     testJWTSecret,
	})

	ctx := context.Background()
	_, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Email: "jefe@stock.test", Password: "secreto1", Role: entity.RoleManager})
	require.NoError(t, err)

	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@stock.test", Password: "secreto0", Role: entity.RoleAdmin})
	require.NoError(t, err)

	f := &apiFixture{app: app, inbox: inbox}
	f.admin = f.login(t, "admin@stock.test", "secreto0")
	f.manager = f.login(t, "jefe@stock.test", "secreto1")

	resp, _ := f.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "op@stock.test", Password: "secreto2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	f.staff = f.login(t, "op@stock.test", "secreto2")
	return f
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, payload any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// seedCatalog crea categoría, bodega, proveedor y producto; devuelve (productID, warehouseID, supplierID).
func (f *apiFixture) seedCatalog(t *testing.T) (string, string, string) {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/categories", f.manager, dto.CreateCategoryRequest{Name: "Raw Materials"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	cat := decode[dto.CategoryResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/warehouses", f.manager, dto.CreateWarehouseRequest{Name: "Main Warehouse"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	wh := decode[dto.WarehouseResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/suppliers", f.manager, dto.CreateSupplierRequest{Name: "ABC Suppliers"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	sup := decode[dto.SupplierResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/products", f.manager, dto.CreateProductRequest{
		Name: "Steel Rod", SKU: "SR-001", CategoryID: cat.ID, UnitOfMeasure: "unit", ReorderPoint: 20,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	prod := decode[dto.ProductResponse](t, body)
	return prod.ID, wh.ID, sup.ID
}

func TestAPI_Health(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_RegistroPublicoNoAsignaRolesElevados(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "x@stock.test", Password: "secreto3", Role: entity.RoleAdmin})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "FORBIDDEN")

	resp, body = f.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "op@stock.test", Password: "secreto2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_EXISTS")
}

func TestAPI_CredencialesInvalidas(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "jefe@stock.test", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_FlujoRecepcionEntregaYKPIs(t *testing.T) {
	f := newAPI(t)
	productID, whID, supID := f.seedCatalog(t)

	// Recepción de 50 creada por el operario, validada por el manager.
	resp, body := f.do(t, http.MethodPost, "/api/receipts", f.staff, dto.CreateReceiptRequest{
		SupplierID: supID, WarehouseID: whID,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: productID, QuantityReceived: 50}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	receipt := decode[dto.DocumentResponse](t, body)
	assert.Equal(t, string(entity.StatusDraft), receipt.Status)

	resp, _ = f.do(t, http.MethodPut, "/api/receipts/"+receipt.ID+"/validate", f.staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el operario no valida documentos")

	resp, body = f.do(t, http.MethodPut, "/api/receipts/"+receipt.ID+"/validate", f.manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	validated := decode[dto.DocumentResponse](t, body)
	assert.Equal(t, string(entity.StatusDone), validated.Status)
	require.Len(t, validated.LedgerEntries, 1)
	assert.Equal(t, int64(50), validated.LedgerEntries[0].NewStockLevel)

	// Validar de nuevo: 409 sin nuevas entradas.
	resp, body = f.do(t, http.MethodPut, "/api/receipts/"+receipt.ID+"/validate", f.manager, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_STATE_TRANSITION")

	resp, body = f.do(t, http.MethodGet, "/api/stock/level?product_id="+productID+"&warehouse_id="+whID, f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, int64(50), decode[dto.StockLevelResponse](t, body).Quantity)

	// Entrega de 60 con 50 disponibles: 409 con el faltante.
	resp, body = f.do(t, http.MethodPost, "/api/deliveries", f.staff, dto.CreateDeliveryRequest{
		WarehouseID:   whID,
		DeliveryItems: []dto.DeliveryItemRequest{{ProductID: productID, QuantityDelivered: 60}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	delivery := decode[dto.DocumentResponse](t, body)

	resp, body = f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/validate", f.manager, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	insufficient := decode[dto.InsufficientStockResponse](t, body)
	assert.Equal(t, "INSUFFICIENT_STOCK", insufficient.Code)
	assert.Equal(t, productID, insufficient.ProductID)
	assert.Equal(t, int64(10), insufficient.Deficit)

	// Pasar a Ready y cancelar.
	resp, body = f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/status", f.staff, dto.ChangeStatusRequest{Status: "Ready"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, string(entity.StatusReady), decode[dto.DocumentResponse](t, body).Status)

	resp, body = f.do(t, http.MethodPut, "/api/deliveries/"+delivery.ID+"/cancel", f.manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, string(entity.StatusCanceled), decode[dto.DocumentResponse](t, body).Status)

	// KPIs y ledger.
	resp, body = f.do(t, http.MethodGet, "/api/dashboard/kpis", f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	kpis := decode[dto.DashboardKPIsDTO](t, body)
	assert.Equal(t, int64(50), kpis.TotalProductsInStock)
	assert.Equal(t, int64(0), kpis.PendingDeliveries)

	resp, _ = f.do(t, http.MethodGet, "/api/dashboard/valuation", f.staff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = f.do(t, http.MethodGet, "/api/dashboard/valuation?warehouse_id="+whID, f.manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	valuation := decode[dto.ValuationDTO](t, body)
	assert.Equal(t, int64(50), valuation.TotalUnits)
	require.Len(t, valuation.SKURanking, 1)
	assert.Equal(t, "SR-001", valuation.SKURanking[0].SKU)

	resp, body = f.do(t, http.MethodGet, "/api/ledger?order=desc&limit=10", f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	ledger := decode[dto.LedgerListResponse](t, body)
	require.Len(t, ledger.Items, 1)
	assert.Equal(t, receipt.ID, ledger.Items[0].DocumentID)

	resp, body = f.do(t, http.MethodGet, "/api/stock/reconcile", f.manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.True(t, decode[dto.ReconcileResponse](t, body).Consistent)
}

func TestAPI_AjusteYTransferencia(t *testing.T) {
	f := newAPI(t)
	productID, whID, _ := f.seedCatalog(t)

	resp, body := f.do(t, http.MethodPost, "/api/warehouses", f.manager, dto.CreateWarehouseRequest{Name: "Production Floor"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	floor := decode[dto.WarehouseResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/adjustments", f.manager, dto.CreateAdjustmentRequest{
		WarehouseID: whID, Reason: "conteo inicial",
		AdjustmentItems: []dto.AdjustmentItemRequest{{ProductID: productID, CountedQuantity: 30}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	adj := decode[dto.DocumentResponse](t, body)
	assert.Equal(t, string(entity.StatusDone), adj.Status)

	resp, body = f.do(t, http.MethodPost, "/api/transfers", f.staff, dto.CreateTransferRequest{
		FromWarehouseID: whID, ToWarehouseID: floor.ID,
		TransferItems: []dto.TransferItemRequest{{ProductID: productID, Quantity: 12}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	tr := decode[dto.DocumentResponse](t, body)

	resp, body = f.do(t, http.MethodPut, "/api/transfers/"+tr.ID+"/complete", f.manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Len(t, decode[dto.DocumentResponse](t, body).LedgerEntries, 2)

	resp, body = f.do(t, http.MethodGet, "/api/stock?product_id="+productID, f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	levels := decode[[]dto.StockLevelResponse](t, body)
	byWarehouse := map[string]int64{}
	for _, l := range levels {
		byWarehouse[l.WarehouseID] = l.Quantity
	}
	assert.Equal(t, int64(18), byWarehouse[whID])
	assert.Equal(t, int64(12), byWarehouse[floor.ID])

	// Ambas bodegas quedan en o bajo el punto de reorden (20).
	resp, body = f.do(t, http.MethodGet, "/api/stock/replenishment", f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Len(t, decode[[]dto.ReplenishmentSuggestionDTO](t, body), 2)

	resp, body = f.do(t, http.MethodGet, "/api/transfers?status=Done", f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Len(t, decode[dto.DocumentListResponse](t, body).Items, 1)

	// Un ajuste no se consulta por la ruta de recepciones.
	resp, _ = f.do(t, http.MethodGet, "/api/receipts/"+adj.ID, f.staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/adjustments", f.staff, dto.CreateAdjustmentRequest{WarehouseID: whID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_ErroresDeValidacion(t *testing.T) {
	f := newAPI(t)
	productID, whID, supID := f.seedCatalog(t)

	resp, body := f.do(t, http.MethodPost, "/api/receipts", f.staff, dto.CreateReceiptRequest{SupplierID: supID, WarehouseID: whID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")

	resp, _ = f.do(t, http.MethodPost, "/api/receipts", f.staff, dto.CreateReceiptRequest{
		SupplierID: supID, WarehouseID: "no-existe",
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: productID, QuantityReceived: 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = f.do(t, http.MethodPost, "/api/products", f.manager, dto.CreateProductRequest{Name: "Copia", SKU: "SR-001"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE")

	resp, _ = f.do(t, http.MethodGet, "/api/products/no-existe", f.staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/dashboard/kpis?status=Perdido", f.staff, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ComprobantePDF(t *testing.T) {
	f := newAPI(t)
	productID, whID, supID := f.seedCatalog(t)

	resp, body := f.do(t, http.MethodPost, "/api/receipts", f.staff, dto.CreateReceiptRequest{
		SupplierID: supID, WarehouseID: whID,
		ReceiptItems: []dto.ReceiptItemRequest{{ProductID: productID, QuantityReceived: 5}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	doc := decode[dto.DocumentResponse](t, body)

	resp, body = f.do(t, http.MethodGet, "/api/documents/"+doc.ID+"/pdf", f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = f.do(t, http.MethodGet, "/api/documents/no-existe/pdf", f.staff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_AdministracionDeRoles(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodGet, "/api/users/me", f.staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	me := decode[dto.UserResponse](t, body)
	assert.Equal(t, entity.RoleStaff, me.Role)

	// Solo admin lista y asigna roles
	resp, _ = f.do(t, http.MethodGet, "/api/users", f.manager, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = f.do(t, http.MethodPatch, "/api/users/"+me.ID+"/role", f.manager, dto.ChangeRoleRequest{Role: entity.RoleManager})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = f.do(t, http.MethodGet, "/api/users", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	list := decode[dto.UserListResponse](t, body)
	assert.Len(t, list.Items, 3)

	resp, body = f.do(t, http.MethodPatch, "/api/users/"+me.ID+"/role", f.admin, dto.ChangeRoleRequest{Role: entity.RoleManager})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, entity.RoleManager, decode[dto.UserResponse](t, body).Role)

	// El rol viaja en el token: el nuevo rol aplica al volver a iniciar sesión
	promoted := f.login(t, "op@stock.test", "secreto2")
	resp, _ = f.do(t, http.MethodPost, "/api/categories", promoted, dto.CreateCategoryRequest{Name: "Tools"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Un admin no puede cambiar su propio rol
	resp, body = f.do(t, http.MethodGet, "/api/users/me", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminID := decode[dto.UserResponse](t, body).ID
	resp, _ = f.do(t, http.MethodPatch, "/api/users/"+adminID+"/role", f.admin, dto.ChangeRoleRequest{Role: entity.RoleStaff})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPatch, "/api/users/no-existe/role", f.admin, dto.ChangeRoleRequest{Role: entity.RoleStaff})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_RestablecerClavePorOTP(t *testing.T) {
	f := newAPI(t)
	const email = "op@stock.test"

	resp, body := f.do(t, http.MethodPost, "/api/auth/request-reset-otp", "", dto.RequestOTPRequest{Email: email})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	generic := decode[dto.MessageResponse](t, body)

	resp, body = f.do(t, http.MethodPost, "/api/auth/request-reset-otp", "", dto.RequestOTPRequest{Email: "nadie@stock.test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, generic, decode[dto.MessageResponse](t, body), "no revela si la cuenta existe")

	code := f.inbox.code(email)
	require.Len(t, code, 6)

	resp, _ = f.do(t, http.MethodPost, "/api/auth/verify-reset-otp", "", dto.VerifyOTPRequest{Email: email, OTPCode: "abcdef"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = f.do(t, http.MethodPost, "/api/auth/verify-reset-otp", "", dto.VerifyOTPRequest{Email: email, OTPCode: code})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	token := decode[dto.ResetTokenResponse](t, body).ResetToken

	// El token de restablecimiento no abre rutas protegidas.
	resp, _ = f.do(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/auth/reset-password", "", dto.ResetPasswordRequest{ResetToken: f.staff, NewPassword: "nueva-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "un token de acceso no restablece")

	resp, body = f.do(t, http.MethodPost, "/api/auth/reset-password", "", dto.ResetPasswordRequest{ResetToken: token, NewPassword: "nueva-clave"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto2"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	f.login(t, email, "nueva-clave")
}
