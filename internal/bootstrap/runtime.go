// Package bootstrap wires up runtime dependencies shared by the binaries:
// database, cache, and tracing.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"subredit/internal/cache"
	"subredit/internal/config"
	"subredit/internal/database"
	"subredit/internal/models"
	"subredit/internal/observability"
	"subredit/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with demo
	// subredits and posts. It is ignored outside development.
	SeedDemoData bool
}

// Runtime holds the initialized shared dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	tracingShutdown func(context.Context) error
}

// InitRuntime connects to DB and Redis, initializes tracing, and optionally
// seeds demo data in development.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; the app runs uncached.
	cache.InitRedis(cfg.RedisURL)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "subredit-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.TracingOTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	rt := &Runtime{
		DB:              db,
		Redis:           cache.GetClient(),
		tracingShutdown: shutdown,
	}

	if opts.SeedDemoData && strings.EqualFold(cfg.Env, "development") {
		if err := seedIfEmpty(db); err != nil {
			return nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return rt, nil
}

// Shutdown flushes pending trace spans.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt.tracingShutdown != nil {
		return rt.tracingShutdown(ctx)
	}
	return nil
}

func seedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Subredit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Empty development database, seeding demo data")
	return seed.Run(db, seed.Options{NumSubredits: 6, PostsPerSub: 4})
}
