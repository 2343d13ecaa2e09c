package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/config"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/events"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/httpapi"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/logging"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/payments"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewLogger("server", cfg.LogLevel)

	var store storage.RecordStore
	if cfg.PGDSN != "" {
		ps, err := storage.NewPostgresStore(cfg.PGDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		if cfg.RunMigrations {
			if err := applyMigration(ps, filepath.Join("migrations", "001_init.sql")); err != nil {
				log.Fatalf("migration: %v", err)
			}
			logger.Info("migration applied", "file", "001_init.sql")
		}
		store = ps
	} else {
		logger.Warn("PG_DSN not set, using in-memory store")
		store = storage.NewMemoryStore()
	}

	srv := httpapi.NewServer(store, logger)
	srv.Company = cfg.Company

	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		srv.Events = producer
	}
	if cfg.StripeAPIKey != "" {
		srv.Stripe = payments.NewStripeClient(cfg.StripeAPIKey)
	}

	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("load dashboard listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("shut down cleanly")
}

func applyMigration(ps *storage.PostgresStore, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = ps.DB().Exec(string(b))
	return err
}
