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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/newsletter-finder/internal/cache"
	"github.com/actuallystonmai/newsletter-finder/internal/config"
	"github.com/actuallystonmai/newsletter-finder/internal/handler"
	"github.com/actuallystonmai/newsletter-finder/internal/logging"
	"github.com/actuallystonmai/newsletter-finder/internal/model"
	"github.com/actuallystonmai/newsletter-finder/internal/repository"
	"github.com/actuallystonmai/newsletter-finder/internal/router"
	"github.com/actuallystonmai/newsletter-finder/internal/service"
	"github.com/actuallystonmai/newsletter-finder/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	format := cfg.LogFormat
	if cfg.IsProduction() {
		format = "json"
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------ Catalog ---------------
	var catalog repository.Catalog
	var reseeded bool

	switch cfg.CatalogSource {
	case config.CatalogFile:
		catalog = repository.NewFileCatalog(cfg.CatalogFile)
		logging.Info().Str("path", cfg.CatalogFile).Msg("using file catalog")

	case config.CatalogPostgres:
		pool, err := connectPostgres(ctx, cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logging.Info().Msg("connected to PostgreSQL")

		// for migrate-down using CLI command
		if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
			if err := migrateDown(ctx, pool); err != nil {
				logging.Fatal().Err(err).Msg("failed to migrate down")
			}
			return
		}

		if err := migrateUp(ctx, pool); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate up")
		}

		repo := repository.NewRepository(pool)
		reseeded, err = checkSeed(ctx, pool, repo)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to check seed")
		}
		catalog = repo
	}

	// ------------ Redis (optional) ---------------
	var catalogCache service.CatalogCache
	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
	} else {
		defer rdb.Close()
		catalogCache = cache.NewCache(rdb, cfg.CacheTTL)
		logging.Info().Msg("connected to Redis")
	}

	svc := service.NewService(catalog, catalogCache, model.NewRanker(), cfg.TopK)
	if reseeded {
		svc.InvalidateCatalog(ctx)
	}

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(handler.NewHandler(svc)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := waitForDB(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Int("attempt", i+1).Msg("waiting for database... (max 30)")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Msg("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Msg("migrations applied successfully")
	return nil
}

// checkSeed reports whether it seeded, so a stale cached catalog can be dropped.
func checkSeed(ctx context.Context, pool *pgxpool.Pool, repo *repository.Repository) (bool, error) {
	count, err := repo.CountNewsletters(ctx)
	if err != nil {
		return false, fmt.Errorf("check newsletters count: %w", err)
	}
	if count > 0 {
		logging.Info().Int("newsletters", count).Msg("database already seeded, skipping")
		return false, nil
	}
	if err := seeds.Setup(ctx, pool); err != nil {
		return false, err
	}
	return true, nil
}
