package index

import (
	"errors"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

func TestNewEventIndex(t *testing.T) {
	index := NewEventIndex()
	if index == nil {
		t.Fatal("NewEventIndex() returned nil")
	}
	if index.Status() != StatusPending {
		t.Errorf("NewEventIndex() status = %v, want %v", index.Status(), StatusPending)
	}
	if index.Count() != 0 {
		t.Errorf("NewEventIndex() should start empty, got %v", index.Count())
	}
	if !index.GetLastReload().IsZero() {
		t.Error("NewEventIndex() should have a zero last reload")
	}
}

func TestUpdateEvents(t *testing.T) {
	index := NewEventIndex()

	events := []domain.Event{
		{ID: 10, Title: "Concert"},
		{ID: 3, Title: "Expo"},
	}
	index.UpdateEvents(events)

	snap := index.Snapshot()
	if snap.Status != StatusLoaded {
		t.Errorf("UpdateEvents() status = %v, want %v", snap.Status, StatusLoaded)
	}
	if len(snap.Events) != 2 {
		t.Fatalf("UpdateEvents() stored %v events, want 2", len(snap.Events))
	}
	// source order is kept
	if snap.Events[0].ID != 10 || snap.Events[1].ID != 3 {
		t.Errorf("UpdateEvents() order = %v,%v want 10,3", snap.Events[0].ID, snap.Events[1].ID)
	}
	if index.GetLastReload().IsZero() {
		t.Error("UpdateEvents() should set last reload")
	}
}

func TestUpdateEventsOverwrites(t *testing.T) {
	index := NewEventIndex()
	index.UpdateEvents([]domain.Event{{ID: 1, Title: "old"}})
	index.UpdateEvents([]domain.Event{{ID: 2, Title: "a"}, {ID: 3, Title: "b"}})

	if index.Count() != 2 {
		t.Errorf("UpdateEvents() should overwrite, got %v events want 2", index.Count())
	}
	if _, ok := index.GetEvent(1); ok {
		t.Error("UpdateEvents() should drop events missing from the new list")
	}
}

func TestUpdateEventsDuplicateIDs(t *testing.T) {
	index := NewEventIndex()
	index.UpdateEvents([]domain.Event{{ID: 1, Title: "first"}, {ID: 1, Title: "second"}})

	if index.Count() != 1 {
		t.Fatalf("UpdateEvents() count = %v, want 1", index.Count())
	}
	ev, _ := index.GetEvent(1)
	if ev.Title != "first" {
		t.Errorf("UpdateEvents() kept %q, want first", ev.Title)
	}
}

func TestUpdateEventsEmpty(t *testing.T) {
	index := NewEventIndex()
	index.UpdateEvents(nil)

	if index.Status() != StatusEmpty {
		t.Errorf("UpdateEvents(nil) status = %v, want %v", index.Status(), StatusEmpty)
	}
}

func TestGetEvent(t *testing.T) {
	tests := []struct {
		name string
		id   int
		want string
		ok   bool
	}{
		{name: "first", id: 10, want: "Concert", ok: true},
		{name: "second", id: 3, want: "Expo", ok: true},
		{name: "missing", id: 99, ok: false},
	}

	index := NewEventIndex()
	index.UpdateEvents([]domain.Event{{ID: 10, Title: "Concert"}, {ID: 3, Title: "Expo"}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := index.GetEvent(tt.id)
			if ok != tt.ok {
				t.Fatalf("GetEvent(%d) ok = %v, want %v", tt.id, ok, tt.ok)
			}
			if ev.Title != tt.want {
				t.Errorf("GetEvent(%d) title = %q, want %q", tt.id, ev.Title, tt.want)
			}
		})
	}
}

func TestFail(t *testing.T) {
	index := NewEventIndex()
	index.UpdateEvents([]domain.Event{{ID: 1, Title: "a"}})
	index.Fail(errors.New("connection refused"))

	snap := index.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("Fail() status = %v, want %v", snap.Status, StatusFailed)
	}
	if len(snap.Events) != 0 {
		t.Errorf("Fail() should clear events, got %v", len(snap.Events))
	}
	if snap.LastError != "connection refused" {
		t.Errorf("Fail() last error = %q", snap.LastError)
	}

	index.UpdateEvents([]domain.Event{{ID: 2}})
	if index.Snapshot().LastError != "" {
		t.Error("UpdateEvents() should clear the last error")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	index := NewEventIndex()
	index.UpdateEvents([]domain.Event{{ID: 1, Title: "a"}})

	snap := index.Snapshot()
	snap.Events[0].Title = "changed"

	ev, _ := index.GetEvent(1)
	if ev.Title != "a" {
		t.Errorf("Snapshot() should not share memory with the index, got %q", ev.Title)
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewEventIndex()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = index.Snapshot()
			_, _ = index.GetEvent(1)
		}()
		go func(i int) {
			defer wg.Done()
			index.UpdateEvents([]domain.Event{{ID: 1}, {ID: i + 2}})
		}(i)
	}
	wg.Wait()

	if index.Count() != 2 {
		t.Errorf("concurrent UpdateEvents() count = %v, want 2", index.Count())
	}
}
