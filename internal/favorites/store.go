package favorites

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/kv"
)

// ErrNotFound is returned when an event id is unknown to the caller's lookups.
var ErrNotFound = errors.New("event not found")

// Change describes one successful toggle.
type Change struct {
	Visitor   string
	Key       string
	EventID   int
	Added     bool
	Favorites []domain.Event
}

// Observer is called after a toggle has been persisted.
type Observer func(Change)

// Store is an ordered list of favorited events mirrored to a kv.Store.
// Order is insertion order and ids are unique.
type Store struct {
	mu      sync.RWMutex
	key     string
	backend kv.Store
	items   []domain.Event
	notify  Observer
}

// Load reads the list stored under key. A missing key yields an empty list.
func Load(ctx context.Context, backend kv.Store, key string) (*Store, error) {
	items := []domain.Event{}
	if _, err := backend.Get(ctx, key, &items); err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return &Store{
		key:     key,
		backend: backend,
		items:   dedupe(items),
	}, nil
}

// Toggle appends ev when no favorite has id, otherwise removes the first entry with id.
// The full list is persisted before observers run. When persisting fails the
// in-memory list is restored and the error returned.
func (s *Store) Toggle(ctx context.Context, id int, ev domain.Event) (bool, error) {
	s.mu.Lock()
	previous := s.items
	idx := s.indexLocked(id)
	added := idx == -1

	next := make([]domain.Event, 0, len(previous)+1)
	if added {
		next = append(next, previous...)
		next = append(next, ev)
	} else {
		next = append(next, previous[:idx]...)
		next = append(next, previous[idx+1:]...)
	}
	s.items = next

	if err := s.persist(ctx, next); err != nil {
		s.items = previous
		s.mu.Unlock()
		return false, fmt.Errorf("failed to persist favorites: %w", err)
	}

	change := Change{Key: s.key, EventID: id, Added: added, Favorites: copyEvents(next)}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify(change)
	}
	return added, nil
}

// persist writes the list. An emptied list drops the key when the backend
// supports it so visitor counts only cover visitors with favorites.
func (s *Store) persist(ctx context.Context, items []domain.Event) error {
	if d, ok := s.backend.(kv.Deleter); ok && len(items) == 0 {
		return d.Delete(ctx, s.key)
	}
	return s.backend.Set(ctx, s.key, items)
}

// IsFavorite reports whether id is in the list.
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) != -1
}

// Lookup returns the stored snapshot of the event.
func (s *Store) Lookup(id int) (domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx != -1 {
		return s.items[idx], true
	}
	return domain.Event{}, false
}

// List returns a copy of the favorites, oldest first.
func (s *Store) List() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEvents(s.items)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) indexLocked(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func copyEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	copy(out, events)
	return out
}

// dedupe keeps the first occurrence of each id. Lists written by Toggle are
// already unique; this only guards against hand-edited data.
func dedupe(events []domain.Event) []domain.Event {
	seen := make(map[int]bool, len(events))
	out := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true
		out = append(out, ev)
	}
	return out
}
