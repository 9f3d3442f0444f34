package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/launches/internal/config"
	"github.com/Nixie-Tech-LLC/launches/internal/db"
	"github.com/Nixie-Tech-LLC/launches/internal/redis"
)

// InitCache connects the redis response cache, or returns nil when it is
// not configured or unreachable.
func InitCache(ctx context.Context, cfg *config.Config) *redis.Cache {
	if cfg.RedisAddress == "" {
		log.Info().Msg("REDIS_ADDRESS not set, launch api responses are not cached")
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cache, err := redis.NewCache(pingCtx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without response cache")
		return nil
	}
	return cache
}

// InitSearchLog connects PostgreSQL and applies migrations, or returns nil
// when DATABASE_URL is not set.
func InitSearchLog(cfg *config.Config) db.Store {
	if cfg.DatabaseURL == "" {
		return nil
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	log.Info().Msg("search history enabled")
	return db.NewStore(db.DB)
}
