// Package app arma el grafo de dependencias compartido por la API y la CLI.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

// Storage repositorios de un backend concreto más su runner transaccional.
type Storage struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Warehouses repository.WarehouseRepository
	Products   repository.ProductRepository
	Documents  repository.DocumentRepository
	Stock      repository.StockRepository
	Ledger     repository.LedgerRepository
	Tx         inventory.TxRunner

	close func()
}

// Close libera el pool (no-op en memoria).
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// MemoryStorage backend en memoria, útil en desarrollo y pruebas.
func MemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Users:      store.Users(),
		Categories: store.Categories(),
		Suppliers:  store.Suppliers(),
		Warehouses: store.Warehouses(),
		Products:   store.Products(),
		Documents:  store.Documents(),
		Stock:      store.Stock(),
		Ledger:     store.Ledger(),
		Tx:         store,
	}
}

// OpenStorage abre el backend indicado por INVENTORY_STORAGE.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Inventory.StorageDriver {
	case config.StorageMemory:
		return MemoryStorage(memory.NewStore()), nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Storage{
			Users:      postgres.NewUserRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Suppliers:  postgres.NewSupplierRepository(pool),
			Warehouses: postgres.NewWarehouseRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Documents:  postgres.NewDocumentRepository(pool),
			Stock:      postgres.NewStockRepository(pool),
			Ledger:     postgres.NewLedgerRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Inventory.StorageDriver)
	}
}

// Services casos de uso listos para exponer.
type Services struct {
	Auth          *auth.AuthUseCase
	PasswordReset *auth.PasswordResetUseCase // nil sin Redis
	Users         *usecase.UserUseCase
	Products      *usecase.ProductUseCase
	Catalog       *usecase.CatalogUseCase
	Warehouses    *usecase.WarehouseUseCase
	Documents     *inventory.DocumentUseCase
	DocumentPDF   *inventory.DocumentPDFUseCase
	Ledger        *inventory.LedgerUseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Dashboard     *appanalytics.DashboardUseCase
	Valuation     *appanalytics.ValuationUseCase
}

// Options piezas opcionales del grafo.
type Options struct {
	// Redis nil = KPIs sin caché y sin restablecimiento de contraseña por OTP.
	Redis redis.UniversalClient
}

// NewServices construye los casos de uso sobre el almacenamiento dado.
func NewServices(cfg *config.Config, st *Storage, opts Options, log zerolog.Logger) *Services {
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	var (
		notifier inventory.ChangeNotifier
		kpiCache appanalytics.KPICache
		reset    *auth.PasswordResetUseCase
	)
	if opts.Redis != nil {
		c := cache.NewKPICache(opts.Redis, cfg.Inventory.KPICacheTTL, log)
		notifier, kpiCache = c, c
		reset = auth.NewPasswordResetUseCase(st.Users,
			cache.NewOTPStore(opts.Redis, auth.OTPTTL, auth.OTPCooldown),
			auth.NewLogOTPSender(log, cfg.App.Env == "development"),
			jwtCfg, log)
	}

	threshold := cfg.Inventory.DefaultLowStockThreshold
	return &Services{
		Auth:          auth.NewAuthUseCase(st.Users, jwtCfg),
		PasswordReset: reset,
		Users:         usecase.NewUserUseCase(st.Users),
		Products:      usecase.NewProductUseCase(st.Products, st.Categories, notifier),
		Catalog:       usecase.NewCatalogUseCase(st.Categories, st.Suppliers),
		Warehouses:    usecase.NewWarehouseUseCase(st.Warehouses),
		Documents: inventory.NewDocumentUseCase(st.Tx, st.Documents, st.Products, st.Warehouses, st.Suppliers,
			inventory.DocumentConfig{LockTimeout: cfg.Inventory.LockTimeout, Notifier: notifier}, log),
		DocumentPDF: inventory.NewDocumentPDFUseCase(st.Documents, st.Products, st.Warehouses, st.Suppliers,
			infrapdf.NewMarotoPDFGenerator(cfg.App.Name)),
		Ledger:        inventory.NewLedgerUseCase(st.Ledger),
		Stock:         inventory.NewStockUseCase(st.Tx, st.Stock, st.Products),
		Replenishment: inventory.NewReplenishmentUseCase(st.Stock, st.Products, threshold),
		Dashboard:     appanalytics.NewDashboardUseCase(st.Stock, st.Products, st.Documents, threshold, kpiCache, log),
		Valuation:     appanalytics.NewValuationUseCase(st.Stock, st.Products),
	}
}
