package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/marketplace/internal/repository"
	"github.com/nikolayk812/marketplace/internal/server"
	"github.com/nikolayk812/marketplace/internal/service"
	"go.uber.org/zap"
)

type config struct {
	DatabaseURL    string
	ListenAddr     string
	MigrationsDir  string
	RequestTimeout time.Duration
}

func loadConfig() config {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ListenAddr:     envOr("LISTEN_ADDR", ":8080"),
		MigrationsDir:  envOr("MIGRATIONS_DIR", "migrations"),
		RequestTimeout: 10 * time.Second,
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repository.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		return err
	}
	logger.Info("migrations applied")

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	carts := repository.NewCart(pool)
	catalog := repository.NewCatalog(pool)
	orders := repository.NewOrders(pool)
	txRunner := repository.NewTxRunner(pool)

	pricer := service.NewCartPricer(carts, catalog)
	consolidator := service.NewCartConsolidator(carts, pricer, logger)
	checkout := service.NewCheckoutCoordinator(pricer, txRunner, service.DefaultCheckoutConfig(), logger)
	sellers := service.NewSellerAggregator(orders, catalog)

	handler := server.NewRouter(server.Services{
		Carts:        carts,
		Pricer:       pricer,
		Consolidator: consolidator,
		Checkout:     checkout,
		Sellers:      sellers,
	}, cfg.RequestTimeout, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")

	return srv.Shutdown(shutdownCtx)
}
