package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/stockmaster-api/internal/app"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Inventory.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer storage.Close()

	var opts app.Options
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, KPIs sin caché ni restablecimiento por OTP")
		} else {
			defer rdb.Close()
			opts.Redis = rdb
		}
	}

	svc := app.NewServices(cfg, storage, opts, log.Zerolog())

	sched := scheduler.New(log.Component("scheduler"), time.Minute)
	if cfg.Inventory.ReconcileSchedule != "" {
		if err := sched.AddReconcileJob(cfg.Inventory.ReconcileSchedule, svc.Stock); err != nil {
			log.Fatal().Err(err).Msg("programar reconciliación")
		}
	}
	sched.Start()

	fiberApp := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "StockMaster API",
		}))
	}

	httpRouter.Router(fiberApp, httpRouter.RouterDeps{
		AuthUC:        svc.Auth,
		PasswordReset: svc.PasswordReset,
		UserUC:        svc.Users,
		ProductUC:     svc.Products,
		CatalogUC:     svc.Catalog,
		WarehouseUC:   svc.Warehouses,
		DocumentUC:    svc.Documents,
		DocumentPDF:   svc.DocumentPDF,
		LedgerUC:      svc.Ledger,
		StockUC:       svc.Stock,
		Replenishment: svc.Replenishment,
		DashboardUC:   svc.Dashboard,
		ValuationUC:   svc.Valuation,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del scheduler")
	}

	log.Info().Msg("aplicación detenida")
}
