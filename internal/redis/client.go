package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/koios/moonlight-shelf/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store reads a settings suite kept in Redis. Each key of the suite lives
// at "{suite}:{key}".
type Store struct {
	client *redis.Client
	suite  string
	logger *zap.Logger
}

// NewStore creates a new Redis-backed settings reader
func NewStore(cfg config.RedisConfig, suite string, logger *zap.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
		zap.String("suite", suite))

	return NewStoreFromClient(rdb, suite, logger), nil
}

// NewStoreFromClient creates a settings reader from an existing client
func NewStoreFromClient(client *redis.Client, suite string, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		suite:  suite,
		logger: logger,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Key returns the Redis key a suite entry is stored under
func (s *Store) Key(key string) string {
	return fmt.Sprintf("%s:%s", s.suite, key)
}

// String reads one suite entry
func (s *Store) String(ctx context.Context, key string) (string, bool, error) {
	redisKey := s.Key(key)

	result, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %s from Redis: %w", redisKey, err)
	}

	s.logger.Debug("Read settings key",
		zap.String("key", redisKey),
		zap.Int("bytes", len(result)))

	return result, true, nil
}

// IsHealthy checks if Redis connection is healthy
func (s *Store) IsHealthy(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}
