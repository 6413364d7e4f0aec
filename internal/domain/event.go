package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Event represents one calendar entry as returned by the remote events API.
//
// It is NOT tied to the wire format of any source.
// Sources map their own payloads into this structure, and the same
// structure is persisted as-is when a visitor favorites the event.
//
// An Event is considered uniquely identified by its ID.
type Event struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the identifier assigned by the remote calendar.
	// It MUST be strictly positive.
	ID int `json:"id" yaml:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is plain text (entities already decoded by the source mapper).
	Title string `json:"title" yaml:"title"`

	// Description is HTML text, stripped at render time.
	Description string `json:"description" yaml:"description"`

	// URL points to the event page on the remote site.
	URL string `json:"url" yaml:"url"`

	// ─────────────────────────────
	// Schedule (event local time)
	// ─────────────────────────────

	StartDate Timestamp `json:"start_date" yaml:"start_date"`
	EndDate   Timestamp `json:"end_date" yaml:"end_date"`

	// ─────────────────────────────
	// Optional parts
	// ─────────────────────────────

	Image *Image `json:"image,omitempty" yaml:"image,omitempty"`
	Venue *Venue `json:"venue,omitempty" yaml:"venue,omitempty"`
}

// Image is the featured image of an event.
type Image struct {
	URL string `json:"url" yaml:"url"`
}

// Venue describes where an event takes place.
type Venue struct {
	Name    string `json:"venue" yaml:"venue"`
	Address string `json:"address" yaml:"address"`
	Zip     string `json:"zip" yaml:"zip"`
	City    string `json:"city" yaml:"city"`
	Country string `json:"country" yaml:"country"`
}

var (
	ErrMissingID    = errors.New("missing id")
	ErrMissingTitle = errors.New("missing title")
	ErrMissingDesc  = errors.New("missing description")
	ErrMissingStart = errors.New("missing start date")
	ErrMissingEnd   = errors.New("missing end date")
)

// Validate reports whether the event carries every field the renderer relies on.
func (e *Event) Validate() error {
	if e.ID <= 0 {
		return ErrMissingID
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event %d: %w", e.ID, ErrMissingTitle)
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("event %d: %w", e.ID, ErrMissingStart)
	}
	if e.EndDate.IsZero() {
		return fmt.Errorf("event %d: %w", e.ID, ErrMissingEnd)
	}
	return nil
}

// ImageURL returns the image URL or "" when the event has no image.
func (e *Event) ImageURL() string {
	if e.Image == nil {
		return ""
	}
	return e.Image.URL
}

// Lines returns the postal lines of the venue, skipping blank ones.
// Example: ["Salle Pleyel", "252 Rue du Faubourg Saint-Honoré", "75008 Paris", "France"]
func (v *Venue) Lines() []string {
	if v == nil {
		return nil
	}
	raw := []string{
		v.Name,
		v.Address,
		strings.TrimSpace(v.Zip + " " + v.City),
		v.Country,
	}
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
