package sources

import (
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

func TestBatchAdd(t *testing.T) {
	start := domain.NewTimestamp(time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC))
	valid := domain.Event{ID: 1, Title: "Concert", StartDate: start, EndDate: start}

	var b Batch
	b.Add(valid, nil)
	b.Add(domain.Event{ID: 2, Title: "no dates"}, nil)
	b.Add(valid, errors.New("bad venue"))

	if len(b.Events) != 1 {
		t.Errorf("Add() kept %v events, want 1", len(b.Events))
	}
	if len(b.Skipped) != 2 {
		t.Errorf("Add() skipped %v records, want 2", len(b.Skipped))
	}
	if !errors.Is(b.Skipped[0], domain.ErrMissingStart) {
		t.Errorf("Add() skip reason = %v, want %v", b.Skipped[0], domain.ErrMissingStart)
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Source: "tribe", Code: 502}
	if err.Error() != "tribe: unexpected status 502" {
		t.Errorf("Error() = %q", err.Error())
	}
}
