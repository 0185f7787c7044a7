// Package main wires together the storefront insights service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/storelens/storefront-insights/internal/api"
	"github.com/storelens/storefront-insights/internal/config"
	collyfetcher "github.com/storelens/storefront-insights/internal/fetcher/colly"
	"github.com/storelens/storefront-insights/internal/insight"
	"github.com/storelens/storefront-insights/internal/logging"
	"github.com/storelens/storefront-insights/internal/metrics"
	memoryStorage "github.com/storelens/storefront-insights/internal/storage/memory"
	postgresStorage "github.com/storelens/storefront-insights/internal/storage/postgres"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	var store insight.Store
	if cfg.DB.DSN != "" {
		pgStore, err := postgresStorage.NewStore(ctx, postgresStorage.StoreConfig{
			DSN:              cfg.DB.DSN,
			InsightsTable:    cfg.DB.InsightsTable,
			CompetitorsTable: cfg.DB.CompetitorsTable,
			MaxConns:         cfg.DB.MaxConns,
			MinConns:         cfg.DB.MinConns,
		})
		if err != nil {
			logger.Fatal("postgres store init failed", zap.Error(err))
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		logger.Warn("db.dsn not set, using in-memory store")
		store = memoryStorage.NewStore()
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      cfg.FetchTimeout(),
		PerDomainRPS: cfg.Fetch.PerDomainRPS,
	})
	assembler := insight.NewAssembler(fetcher, logger.Named("assembler"))
	batch := insight.NewBatchRunner(assembler, cfg.Batch.Concurrency, logger.Named("batch"))

	apiServer := api.NewServer(assembler, batch, store, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
