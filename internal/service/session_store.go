package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/institute-admin/internal/config"
)

// SessionStore keeps the ID of the one token each user may currently use.
type SessionStore interface {
	Save(ctx context.Context, userID int64, jti string, ttl time.Duration) error
	// Active returns ErrNoActiveSession when the user has none.
	Active(ctx context.Context, userID int64) (string, error)
	Revoke(ctx context.Context, userID int64) error
}

// RedisSessionStore stores sessions under config.CacheKey.UserSessionKey.
type RedisSessionStore struct {
	rdb redis.Cmdable
}

func NewRedisSessionStore(rdb redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Save(ctx context.Context, userID int64, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, config.CacheKey.UserSessionKey(userID), jti, ttl).Err()
}

func (s *RedisSessionStore) Active(ctx context.Context, userID int64) (string, error) {
	jti, err := s.rdb.Get(ctx, config.CacheKey.UserSessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoActiveSession
		}
		return "", fmt.Errorf("check session: %w", err)
	}
	return jti, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, config.CacheKey.UserSessionKey(userID)).Err()
}
