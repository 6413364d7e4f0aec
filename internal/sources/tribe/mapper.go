package tribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/sources"
)

// Mapper converts API records to domain.Event entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapEvents converts every record, skipping the malformed ones
func (m *Mapper) MapEvents(raw []RawEvent) sources.Batch {
	var batch sources.Batch
	for _, r := range raw {
		batch.Add(m.mapEvent(r))
	}
	return batch
}

func (m *Mapper) mapEvent(r RawEvent) (domain.Event, error) {
	if r.ID <= 0 {
		return domain.Event{}, domain.ErrMissingID
	}
	if r.Description == nil {
		return domain.Event{}, fmt.Errorf("event %d: %w", r.ID, domain.ErrMissingDesc)
	}

	start, err := domain.ParseTimestamp(r.StartDate)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %d: start date: %w", r.ID, err)
	}
	end, err := domain.ParseTimestamp(r.EndDate)
	if err != nil {
		return domain.Event{}, fmt.Errorf("event %d: end date: %w", r.ID, err)
	}

	return domain.Event{
		ID:          r.ID,
		Title:       domain.CleanTitle(r.Title),
		Description: *r.Description,
		URL:         strings.TrimSpace(r.URL),
		StartDate:   start,
		EndDate:     end,
		Image:       decodeImage(r.Image),
		Venue:       decodeVenue(r.Venue),
	}, nil
}

// decodeImage returns nil for false, null, [] and objects without a url
func decodeImage(raw json.RawMessage) *domain.Image {
	if !isObject(raw) {
		return nil
	}
	var img RawImage
	if err := json.Unmarshal(raw, &img); err != nil || strings.TrimSpace(img.URL) == "" {
		return nil
	}
	return &domain.Image{URL: strings.TrimSpace(img.URL)}
}

// decodeVenue returns nil for false, null, [] and venues without any postal line
func decodeVenue(raw json.RawMessage) *domain.Venue {
	if !isObject(raw) {
		return nil
	}
	var v domain.Venue
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	v.Name = domain.CleanTitle(v.Name)
	if len(v.Lines()) == 0 {
		return nil
	}
	return &v
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
