// Package main is the entry point for the lucapp API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/lucapp/config"
	"github.com/finance-tracker/lucapp/internal/infra/db"
	"github.com/finance-tracker/lucapp/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// run serves until a shutdown signal arrives. Deferred cleanup runs before it
// returns, whatever the outcome.
func run() error {
	cfg := config.Load()

	slog.Info("Starting lucapp API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
	)

	storage, err := db.OpenStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, dependency.Options{
		Store:         storage.Store,
		StorageDriver: storage.Driver,
		HealthCheck:   storage.HealthCheck,
	})
	if err != nil {
		return fmt.Errorf("failed to wire dependencies: %w", err)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if cfg.Worker.Enabled {
		group.Go(func() error {
			return injector.MigrationWorker.Start(groupCtx)
		})
	}

	// Graceful shutdown
	group.Go(func() error {
		<-groupCtx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return group.Wait()
}
