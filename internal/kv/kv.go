package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Store is the durable half of the persistence adapter.
// Values are JSON-serializable. A missing key is not an error:
// Get reports found=false and leaves dst untouched.
type Store interface {
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Set(ctx context.Context, key string, v any) error
}

// Checker is implemented by backends that can report their health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Counter is implemented by backends that can count keys under a prefix.
type Counter interface {
	Count(ctx context.Context, prefix string) (int, error)
}

// Deleter is implemented by backends that can drop a key. Writers use it
// instead of storing an empty value.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Store. Values are kept encoded so callers never
// share memory with what was stored.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Count returns the number of keys starting with prefix.
func (m *Memory) Count(_ context.Context, prefix string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n, nil
}
