package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"file-manager-api/config"
)

// Tokens live under "auth_<token>", same namespace the rest of the
// platform expects.
const keyPrefix = "auth_"

var ErrSessionNotFound = errors.New("session not found")

type Store struct {
	log *zap.Logger
	rdb *redis.Client
}

func New(ctx context.Context, logger *zap.Logger, cfg config.Redis, addr string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connected successfully")

	return &Store{log: logger, rdb: rdb}, nil
}

func (s *Store) Set(ctx context.Context, token, ownerID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+token, ownerID, ttl).Err()
}

func (s *Store) Get(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) Del(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.rdb.Close() }
