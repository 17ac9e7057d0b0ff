package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	PasswordReset *auth.PasswordResetUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	CatalogUC     *usecase.CatalogUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	DocumentUC    *inventory.DocumentUseCase
	DocumentPDF   *inventory.DocumentPDFUseCase
	LedgerUC      *inventory.LedgerUseCase
	StockUC       *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ValuationUC   *appanalytics.ValuationUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
//
// Permisos: cualquier usuario autenticado consulta y crea borradores; manager y admin
// mantienen el catálogo, validan, completan, cancelan y registran ajustes. Solo admin
// asigna roles.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	if deps.PasswordReset != nil {
		reset := NewPasswordResetHandler(deps.PasswordReset)
		authGroup.Post("/request-reset-otp", reset.RequestOTP)
		authGroup.Post("/verify-reset-otp", reset.VerifyOTP)
		authGroup.Post("/reset-password", reset.ResetPassword)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	supervisor := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Usuarios: perfil propio y administración de roles
	if deps.UserUC != nil {
		userHandler := NewUserHandler(deps.UserUC)
		users := protected.Group("/users")
		users.Get("/me", userHandler.Me)
		users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
		users.Patch("/:id/role", RequireRole(entity.RoleAdmin), userHandler.ChangeRole)
	}

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", supervisor, productHandler.Create)
	products.Put("/:id", supervisor, productHandler.Update)

	// Categories y suppliers
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", supervisor, catalogHandler.CreateCategory)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Post("/", supervisor, catalogHandler.CreateSupplier)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", supervisor, warehouseHandler.Create)
	warehouses.Post("/:id/locations", supervisor, warehouseHandler.AddLocation)

	// Documentos de inventario
	docHandler := NewDocumentHandler(deps.DocumentUC, deps.DocumentPDF)

	receipts := protected.Group("/receipts")
	receipts.Post("/", docHandler.CreateReceipt)
	registerDocumentRoutes(receipts, docHandler, entity.DocumentTypeReceipt, supervisor)
	receipts.Put("/:id/validate", supervisor, docHandler.Validate(entity.DocumentTypeReceipt))

	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", docHandler.CreateDelivery)
	registerDocumentRoutes(deliveries, docHandler, entity.DocumentTypeDelivery, supervisor)
	deliveries.Put("/:id/validate", supervisor, docHandler.Validate(entity.DocumentTypeDelivery))

	transfers := protected.Group("/transfers")
	transfers.Post("/", docHandler.CreateTransfer)
	registerDocumentRoutes(transfers, docHandler, entity.DocumentTypeTransfer, supervisor)
	transfers.Put("/:id/complete", supervisor, docHandler.Complete)

	adjustments := protected.Group("/adjustments")
	adjustments.Post("/", supervisor, docHandler.CreateAdjustment)
	adjustments.Get("/", docHandler.List(entity.DocumentTypeAdjustment))
	adjustments.Get("/:id", docHandler.Get(entity.DocumentTypeAdjustment))

	protected.Get("/documents/:id/pdf", docHandler.PDF)

	// Ledger e índice de stock
	stockHandler := NewStockHandler(deps.LedgerUC, deps.StockUC)
	protected.Get("/ledger", stockHandler.Ledger)
	stock := protected.Group("/stock")
	stock.Get("/", stockHandler.List)
	stock.Get("/level", stockHandler.Level)
	stock.Get("/reconcile", supervisor, stockHandler.Reconcile)
	if deps.Replenishment != nil {
		stock.Get("/replenishment", NewReplenishmentHandler(deps.Replenishment).List)
	}

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ValuationUC)
	protected.Get("/dashboard/kpis", dashboardHandler.GetKPIs)
	if deps.ValuationUC != nil {
		protected.Get("/dashboard/valuation", supervisor, dashboardHandler.Valuation)
	}
}

// registerDocumentRoutes rutas comunes de consulta y transición de un tipo de documento.
func registerDocumentRoutes(g fiber.Router, h *DocumentHandler, t entity.DocumentType, supervisor fiber.Handler) {
	g.Get("/", h.List(t))
	g.Get("/:id", h.Get(t))
	g.Put("/:id/status", h.ChangeStatus(t))
	g.Put("/:id/cancel", supervisor, h.Cancel(t))
}
