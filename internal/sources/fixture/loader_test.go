package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderFetch(t *testing.T) {
	path := writeFixture(t, `---
events:
  - id: 1
    title: Concert
    description: "<p>Jazz &amp; Blues</p>"
    url: https://example.org/concert
    start_date: "2025-03-15 19:30:00"
    end_date: "2025-03-15 23:00:00"
    image:
      url: https://example.org/concert.jpg
    venue:
      venue: Salle Pleyel
      zip: "75008"
      city: Paris
  - id: 2
    title: Sans fin
    start_date: "2025-03-16 10:00:00"
`)

	batch, err := NewLoader(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(batch.Events) != 1 {
		t.Fatalf("Fetch() returned %v events, want 1", len(batch.Events))
	}
	if len(batch.Skipped) != 1 {
		t.Errorf("Fetch() skipped %v records, want 1", len(batch.Skipped))
	}

	ev := batch.Events[0]
	if ev.ImageURL() != "https://example.org/concert.jpg" {
		t.Errorf("image = %q", ev.ImageURL())
	}
	if ev.Venue == nil || ev.Venue.Zip != "75008" {
		t.Errorf("venue = %+v", ev.Venue)
	}
	if got := ev.EndDate.String(); got != "2025-03-15 23:00:00" {
		t.Errorf("end = %q", got)
	}
}

func TestLoaderSkipsMissingDescription(t *testing.T) {
	path := writeFixture(t, `events:
  - id: 1
    title: Sans description
    start_date: "2025-03-15 19:30:00"
    end_date: "2025-03-15 23:00:00"
  - id: 2
    title: Description vide
    description: ""
    start_date: "2025-03-15 19:30:00"
    end_date: "2025-03-15 23:00:00"
`)

	batch, err := NewLoader(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(batch.Events) != 1 || batch.Events[0].ID != 2 {
		t.Fatalf("Fetch() events = %+v, want only id 2", batch.Events)
	}
	if len(batch.Skipped) != 1 || !errors.Is(batch.Skipped[0], domain.ErrMissingDesc) {
		t.Errorf("Fetch() skipped = %v, want one missing description", batch.Skipped)
	}
}

func TestLoaderEmptyFile(t *testing.T) {
	path := writeFixture(t, "events: []\n")
	batch, err := NewLoader(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(batch.Events) != 0 {
		t.Errorf("Fetch() returned %v events, want 0", len(batch.Events))
	}
}

func TestLoaderInvalidDate(t *testing.T) {
	path := writeFixture(t, `events:
  - id: 1
    title: x
    start_date: someday
`)
	if _, err := NewLoader(path).Fetch(context.Background()); err == nil {
		t.Error("Fetch() should fail on an unparseable date")
	}
}

func TestLoaderFileNotFound(t *testing.T) {
	if _, err := NewLoader("/nonexistent/path/events.yaml").Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(writeFixture(t, "events: []\n")).Fetch(ctx); err == nil {
		t.Error("Fetch() should honor a canceled context")
	}
}
