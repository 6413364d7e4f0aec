package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is the default TTL for stored values (one year, like the theme cookie)
	DefaultTTL = 365 * 24 * time.Hour
)

// Store handles Redis operations for visitor data.
// It implements kv.Store: values are JSON, TTL is refreshed on every write.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store. A zero ttl means DefaultTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get loads the JSON value stored under key into dst.
// A missing key returns found=false without error.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return true, nil
}

// Set stores v as JSON under key
func (s *Store) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := s.client.Set(ctx, Key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return nil
}

// Delete removes the value stored under key
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, Key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
