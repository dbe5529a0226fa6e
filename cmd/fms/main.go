package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/omar-zaman/omam-fms/cmd/fms/cli"
	"github.com/omar-zaman/omam-fms/internal/app"
	"github.com/omar-zaman/omam-fms/internal/auth"
	"github.com/omar-zaman/omam-fms/internal/inventory"
	"github.com/omar-zaman/omam-fms/internal/masterdata/items"
	"github.com/omar-zaman/omam-fms/internal/masterdata/materials"
	"github.com/omar-zaman/omam-fms/internal/masterdata/suppliers"
	"github.com/omar-zaman/omam-fms/internal/observability"
	"github.com/omar-zaman/omam-fms/internal/payments"
	"github.com/omar-zaman/omam-fms/internal/platform/db"
	"github.com/omar-zaman/omam-fms/internal/procurement"
	"github.com/omar-zaman/omam-fms/internal/reports"
	"github.com/omar-zaman/omam-fms/internal/sales/customers"
	"github.com/omar-zaman/omam-fms/internal/sales/orders"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if len(os.Args) > 1 {
		if err := cli.Run(ctx, os.Args[1:], dbpool, logger); err != nil {
			logger.Error("command failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	tokens := auth.NewTokenStore(redisClient, cfg.TokenTTL)
	authService := auth.NewService(auth.NewRepository(dbpool))
	authHandler := auth.NewHandler(logger, authService, tokens)
	authMiddleware := auth.Middleware{Tokens: tokens, Logger: logger}

	itemsHandler := items.NewHandler(logger, items.NewService(items.NewRepository(dbpool)))
	materialsHandler := materials.NewHandler(logger, materials.NewService(materials.NewRepository(dbpool)))
	suppliersHandler := suppliers.NewHandler(logger, suppliers.NewService(suppliers.NewRepository(dbpool)))
	customersHandler := customers.NewHandler(logger, customers.NewService(customers.NewRepository(dbpool)))

	ledger := inventory.NewLedger(logger, metrics)
	inventoryHandler := inventory.NewHandler(logger, inventory.NewService(inventory.NewRepository(dbpool)))

	salesService := orders.NewService(dbpool, ledger, logger)
	salesHandler := orders.NewHandler(logger, salesService)

	procurementService := procurement.NewService(dbpool, ledger, logger)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	paymentsService := payments.NewService(payments.NewRepository(dbpool))
	paymentsHandler := payments.NewHandler(logger, paymentsService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsService := reports.NewService(orders.NewQueries(dbpool), procurement.NewQueries(dbpool), payments.NewRepository(dbpool), reportCache)
	reportsHandler := reports.NewHandler(logger, reportsService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		ItemsHandler:       itemsHandler,
		MaterialsHandler:   materialsHandler,
		SuppliersHandler:   suppliersHandler,
		CustomersHandler:   customersHandler,
		SalesOrdersHandler: salesHandler,
		ProcurementHandler: procurementHandler,
		PaymentsHandler:    paymentsHandler,
		InventoryHandler:   inventoryHandler,
		ReportsHandler:     reportsHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
