package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"marketScope/internal/chain"
	"marketScope/internal/model"
	"marketScope/internal/storage"
)

const keyPrefix = "markets:pools:"

// Cache is a read-through snapshot cache in front of a PoolSource. Redis
// failures fall back to the source.
type Cache struct {
	client redis.Cmdable
	source storage.PoolSource
	ttl    time.Duration
	logger *zap.Logger
}

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, addr string, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", addr, err)
	}
	if logger != nil {
		logger.Info("connected to redis", zap.String("addr", addr))
	}
	return rdb, nil
}

func NewCache(client redis.Cmdable, source storage.PoolSource, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Key returns the snapshot key of a chain.
func Key(chainID chain.ChainID) string {
	return fmt.Sprintf("%s%d", keyPrefix, chainID)
}

// LoadPools serves the cached snapshot or loads and stores a fresh one.
func (c *Cache) LoadPools(ctx context.Context, chainID chain.ChainID) ([]model.Pool, error) {
	key := Key(chainID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var pools []model.Pool
		if err := json.Unmarshal(data, &pools); err == nil {
			return pools, nil
		}
		c.logger.Warn("drop corrupt pool snapshot", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("pool snapshot read failed", zap.String("key", key), zap.Error(err))
	}

	pools, err := c.source.LoadPools(ctx, chainID)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(pools)
	if err != nil {
		return nil, fmt.Errorf("marshal pool snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("pool snapshot write failed", zap.String("key", key), zap.Error(err))
	}
	return pools, nil
}

// Invalidate drops the snapshot of a chain.
func (c *Cache) Invalidate(ctx context.Context, chainID chain.ChainID) error {
	return c.client.Del(ctx, Key(chainID)).Err()
}

var _ storage.PoolSource = (*Cache)(nil)
