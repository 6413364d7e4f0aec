package fixture

import (
	"fmt"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

// File is the root structure of an events fixture.
//
//	events:
//	  - id: 1
//	    title: Concert
//	    description: "<p>...</p>"
//	    start_date: "2025-03-15 19:30:00"
//	    end_date: "2025-03-15 23:00:00"
//	    venue: { venue: Salle Pleyel, city: Paris }
type File struct {
	Events []Record `yaml:"events"`
}

// Record is one fixture entry. Description is a pointer so a missing key
// can be told apart from an empty description.
type Record struct {
	ID          int              `yaml:"id"`
	Title       string           `yaml:"title"`
	Description *string          `yaml:"description"`
	URL         string           `yaml:"url"`
	StartDate   domain.Timestamp `yaml:"start_date"`
	EndDate     domain.Timestamp `yaml:"end_date"`
	Image       *domain.Image    `yaml:"image"`
	Venue       *domain.Venue    `yaml:"venue"`
}

// Event converts the record. Records without a description are rejected.
func (r Record) Event() (domain.Event, error) {
	if r.ID <= 0 {
		return domain.Event{}, domain.ErrMissingID
	}
	if r.Description == nil {
		return domain.Event{}, fmt.Errorf("event %d: %w", r.ID, domain.ErrMissingDesc)
	}
	return domain.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: *r.Description,
		URL:         r.URL,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Image:       r.Image,
		Venue:       r.Venue,
	}, nil
}
