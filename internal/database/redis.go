package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/config"
)

// NewRedisClient creates and validates the Redis client backing login sessions.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	const op = "database.NewRedisClient"

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, apperror.Configuration(op, fmt.Errorf("parse redis URL: %w", err))
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperror.Connection(op, fmt.Errorf("ping redis: %w", err))
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected for sessions")

	return rdb, nil
}
