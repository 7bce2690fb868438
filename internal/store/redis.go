package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed store
func NewRedis(addr, password string, db int) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Set overwrites the value stored at path. No TTL: the mirror lives as long
// as the user keeps it.
func (r *Redis) Set(ctx context.Context, path string, value []byte) error {
	if err := r.client.Set(ctx, path, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", path, err)
	}
	return nil
}

// Get returns the value stored at path, found=false for unknown keys
func (r *Redis) Get(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, path).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", path, err)
	}
	return data, true, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Ping checks connectivity to the Redis server
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
