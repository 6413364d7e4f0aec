package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

// Status is the state of the events grid
type Status string

const (
	StatusPending Status = "pending" // no fetch has completed yet
	StatusLoaded  Status = "loaded"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// Snapshot is a consistent read of the index
type Snapshot struct {
	Status     Status         `json:"status"`
	Events     []domain.Event `json:"events"`
	LastReload time.Time      `json:"last_reload"`
	LastError  string         `json:"last_error,omitempty"`
}

// EventIndex holds the events of the last fetch, in source order,
// plus an id lookup table used by click handlers
type EventIndex struct {
	mu         sync.RWMutex
	status     Status
	events     []domain.Event
	byID       map[int]int // ID -> position in events
	lastReload time.Time
	lastErr    string
}

// NewEventIndex creates an empty index in the pending state
func NewEventIndex() *EventIndex {
	return &EventIndex{
		status: StatusPending,
		byID:   make(map[int]int),
	}
}

// UpdateEvents replaces all events in the index.
// An empty list moves the index to StatusEmpty.
func (idx *EventIndex) UpdateEvents(events []domain.Event) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.events = make([]domain.Event, 0, len(events))
	idx.byID = make(map[int]int, len(events))
	for _, ev := range events {
		if _, dup := idx.byID[ev.ID]; dup {
			continue
		}
		idx.byID[ev.ID] = len(idx.events)
		idx.events = append(idx.events, ev)
	}

	idx.status = StatusLoaded
	if len(idx.events) == 0 {
		idx.status = StatusEmpty
	}
	idx.lastErr = ""
	idx.lastReload = time.Now()
}

// Fail records a failed fetch. Previously loaded events are dropped
// so the grid shows the error message only.
func (idx *EventIndex) Fail(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.events = nil
	idx.byID = make(map[int]int)
	idx.status = StatusFailed
	idx.lastErr = ""
	if err != nil {
		idx.lastErr = err.Error()
	}
	idx.lastReload = time.Now()
}

// GetEvent retrieves an event by ID
func (idx *EventIndex) GetEvent(id int) (domain.Event, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pos, ok := idx.byID[id]
	if !ok {
		return domain.Event{}, false
	}
	return idx.events[pos], true
}

// Snapshot returns the status and a copy of the events
func (idx *EventIndex) Snapshot() Snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	events := make([]domain.Event, len(idx.events))
	copy(events, idx.events)
	return Snapshot{
		Status:     idx.status,
		Events:     events,
		LastReload: idx.lastReload,
		LastError:  idx.lastErr,
	}
}

// Status returns the current grid status
func (idx *EventIndex) Status() Status {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.status
}

// Count returns the number of events in the index
func (idx *EventIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.events)
}

// GetLastReload returns the timestamp of the last fetch, successful or not
func (idx *EventIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
