// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/cashpick/docs" // Registers the OpenAPI document
	"github.com/tomtom215/cashpick/internal/api"
	"github.com/tomtom215/cashpick/internal/config"
	"github.com/tomtom215/cashpick/internal/database"
	"github.com/tomtom215/cashpick/internal/logging"
	"github.com/tomtom215/cashpick/internal/supervisor"
	"github.com/tomtom215/cashpick/internal/supervisor/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// Demo data sizing for SEED_DEMO_DATA.
const (
	demoUsers               = 50
	demoInteractionsPerUser = 8
	demoSeed                = 42
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("events_backend", cfg.Events.Backend).
		Msg("Starting Cashpick with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if err := prepareData(context.Background(), cfg, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing database")
		}
		logging.Fatal().Err(err).Msg("Failed to prepare data")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	rc, err := initRecommend(cfg, db, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}
	defer rc.Close()

	ec, err := initEvents(cfg, rc.Engine, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event bus")
	}
	defer ec.Close()

	if cfg.Snapshot.Enabled {
		tree.AddDataService(services.NewSnapshotService(db, services.SnapshotServiceConfig{
			Interval: cfg.Snapshot.Interval,
			Dir:      cfg.Snapshot.Dir,
			Format:   cfg.Snapshot.Format,
		}, logging.WithComponent("snapshot")))
		logging.Info().
			Dur("interval", cfg.Snapshot.Interval).
			Str("dir", cfg.Snapshot.Dir).
			Msg("Snapshot exporter added to supervisor tree")
	}

	handler, err := api.NewHandler(db, rc.Engine, ec.interactionPublisher(), api.Options{
		Version:        version,
		RequestTimeout: cfg.Server.RequestTimeout,
		ItemCacheTTL:   cfg.Server.ItemCacheTTL,
		ItemCacheSize:  cfg.Server.ItemCacheSize,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}
	defer handler.Close()

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting disabled (DISABLE_RATE_LIMIT=true)")
	}

	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, mw),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		cancel()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// prepareData imports the configured catalog and seeds demo data.
func prepareData(ctx context.Context, cfg *config.Config, db *database.DB) error {
	if path := cfg.Database.SeedCatalogCSV; path != "" {
		n, err := db.ImportCatalogCSV(ctx, path)
		if err != nil {
			return fmt.Errorf("import catalog %s: %w", path, err)
		}
		logging.Info().Str("path", path).Int64("items", n).Msg("Catalog imported")
	}

	if cfg.Database.SeedDemoData {
		users, err := db.CountUsers(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if users > 0 {
			logging.Info().Int64("users", users).Msg("Database not empty, skipping demo data")
		} else {
			_, err := db.SeedDemoData(ctx, database.DemoOptions{
				CatalogFirstID:      cfg.Recommend.CatalogFirstID,
				CatalogSize:         cfg.Recommend.CatalogSize,
				Users:               demoUsers,
				InteractionsPerUser: demoInteractionsPerUser,
				Seed:                demoSeed,
			})
			if err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
		}
	}

	items, err := db.CountItems(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if items != int64(cfg.Recommend.CatalogSize) {
		logging.Warn().
			Int64("items", items).
			Int("catalog_size", cfg.Recommend.CatalogSize).
			Msg("Item table does not match CATALOG_SIZE; recommendations may reference missing items")
	}
	return nil
}
