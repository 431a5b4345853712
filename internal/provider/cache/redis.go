package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"portfoliotracker/internal/provider"
)

const keyPrefix = "quote:"

// Redis is a Store shared between service instances. Entries expire on the
// Redis side.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
}

// Compile-time check to ensure Redis implements Store
var _ Store = (*Redis)(nil)

func NewRedis(client *redis.Client, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) (provider.Quote, bool) {
	payload, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("quote cache read failed", zap.String("key", key), zap.Error(err))
		}
		return provider.Quote{}, false
	}
	var q provider.Quote
	if err := json.Unmarshal(payload, &q); err != nil {
		r.logger.Warn("quote cache entry corrupt", zap.String("key", key), zap.Error(err))
		return provider.Quote{}, false
	}
	return q, true
}

func (r *Redis) Set(ctx context.Context, key string, q provider.Quote, ttl time.Duration) {
	payload, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		r.logger.Warn("quote cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Ping checks connectivity; used once at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
