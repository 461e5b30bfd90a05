package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/askelund/bgastats/internal/config"
	"github.com/askelund/bgastats/internal/importer"
	"github.com/askelund/bgastats/internal/logging"
	"github.com/askelund/bgastats/internal/scrape"
	"github.com/askelund/bgastats/internal/store"
	"github.com/askelund/bgastats/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"scrape_enabled", cfg.Scrape.Enabled,
	)

	// Connect to database
	ctx := context.Background()
	pool, err := store.Connect(ctx, cfg.Database.URL,
		int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	// Apply pending schema migrations
	if err := store.Migrate(ctx, pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Import service: one transaction per call, bounded concurrency
	svc := importer.New(pool, importer.Options{
		MaxConcurrent: cfg.Import.MaxConcurrent,
		MaxSlotWait:   cfg.Import.MaxSlotWait,
	})

	// Pool-bound store for the read-only endpoints
	readStore := store.NewTxStore(pool)

	// Scraper is optional; without it the scrape routes are not registered
	var scraper web.Scraper
	if cfg.Scrape.Enabled {
		client := scrape.NewClient(cfg.Scrape)
		defer client.Close()
		scraper = client
		slog.Info("scraper enabled", "base_url", cfg.Scrape.BaseURL, "session_saved", client.HasSession())
	}

	server := web.NewServer(cfg, svc, readStore, scraper)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
