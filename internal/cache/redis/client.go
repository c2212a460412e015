package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eagle-health/analytics-backend/pkg/logger"
)

// Client caches aggregate query results. The underlying dataset is static
// (2004-2017), so entries only expire to bound memory, not for freshness.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

// NewClientWithRedis wraps an existing redis client; used by tests.
func NewClientWithRedis(client *redis.Client, ttl time.Duration) *Client {
	return &Client{client: client, ttl: ttl}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// SetAggregate stores a JSON-encoded aggregate result under the given key.
func (c *Client) SetAggregate(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal aggregate: %w", err)
	}

	if err := c.client.Set(ctx, "agg:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set aggregate cache: %w", err)
	}

	logger.Debug("Aggregate cached", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// GetAggregate loads a cached aggregate into value. The bool reports whether
// the key was present.
func (c *Client) GetAggregate(ctx context.Context, key string, value interface{}) (bool, error) {
	data, err := c.client.Get(ctx, "agg:"+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get aggregate cache: %w", err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal aggregate: %w", err)
	}

	logger.Debug("Aggregate cache hit", zap.String("key", key))
	return true, nil
}
