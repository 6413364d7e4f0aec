package favorites

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/kv"
)

const (
	// DefaultCacheSize is the number of visitor lists kept in memory
	DefaultCacheSize = 1024
	// KeyPrefix prefixes every favorites key in the backend
	KeyPrefix = "favorites:"

	stripes = 64
)

// Key returns the backend key holding the favorites of a visitor.
func Key(visitor string) string {
	return KeyPrefix + visitor
}

// Registry hands out the favorites Store of each visitor.
// Loaded stores are cached; mutations of one visitor are serialized.
type Registry struct {
	backend kv.Store
	cache   *lru.Cache[string, *Store]
	locks   [stripes]sync.Mutex

	obsMu     sync.RWMutex
	observers []Observer
}

// NewRegistry creates a registry over backend. size <= 0 means DefaultCacheSize.
func NewRegistry(backend kv.Store, size int) (*Registry, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *Store](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorites cache: %w", err)
	}
	return &Registry{
		backend: backend,
		cache:   cache,
	}, nil
}

// Subscribe registers an observer called after every persisted toggle.
func (r *Registry) Subscribe(obs Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, obs)
}

// For returns the favorites of visitor, loading them on first access.
func (r *Registry) For(ctx context.Context, visitor string) (*Store, error) {
	mu := r.lockFor(visitor)
	mu.Lock()
	defer mu.Unlock()
	return r.forLocked(ctx, visitor)
}

// Toggle flips the membership of ev in the favorites of visitor.
// It returns true when the event was added.
func (r *Registry) Toggle(ctx context.Context, visitor string, id int, ev domain.Event) (bool, error) {
	mu := r.lockFor(visitor)
	mu.Lock()
	defer mu.Unlock()

	store, err := r.forLocked(ctx, visitor)
	if err != nil {
		return false, err
	}
	return store.Toggle(ctx, id, ev)
}

// Cached returns the number of visitor lists currently in memory.
func (r *Registry) Cached() int {
	return r.cache.Len()
}

// Stored returns how many visitors have a favorites list in the backend.
// ok is false when the backend cannot count keys.
func (r *Registry) Stored(ctx context.Context) (n int, ok bool, err error) {
	counter, ok := r.backend.(kv.Counter)
	if !ok {
		return 0, false, nil
	}
	n, err = counter.Count(ctx, KeyPrefix)
	return n, true, err
}

func (r *Registry) forLocked(ctx context.Context, visitor string) (*Store, error) {
	if store, ok := r.cache.Get(visitor); ok {
		return store, nil
	}

	store, err := Load(ctx, r.backend, Key(visitor))
	if err != nil {
		return nil, err
	}
	store.notify = func(c Change) {
		c.Visitor = visitor
		r.broadcast(c)
	}
	r.cache.Add(visitor, store)
	return store, nil
}

func (r *Registry) broadcast(c Change) {
	r.obsMu.RLock()
	observers := r.observers
	r.obsMu.RUnlock()
	for _, obs := range observers {
		obs(c)
	}
}

func (r *Registry) lockFor(visitor string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(visitor))
	return &r.locks[h.Sum32()%stripes]
}
