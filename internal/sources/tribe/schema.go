package tribe

import "encoding/json"

// Response is the body of GET /wp-json/tribe/events/v1/events.
// A missing "events" field decodes as an empty list.
type Response struct {
	Events []RawEvent `json:"events"`
	Total  int        `json:"total"`
}

// RawEvent is one record as served by The Events Calendar REST API.
// Image and Venue are kept raw: the API sends false and [] when they are unset.
type RawEvent struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	URL         string          `json:"url"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Image       json.RawMessage `json:"image"`
	Venue       json.RawMessage `json:"venue"`
}

// RawImage is the populated form of "image"
type RawImage struct {
	URL string `json:"url"`
}
