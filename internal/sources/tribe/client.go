package tribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/agenda/internal/sources"
	"github.com/MrSnakeDoc/agenda/internal/utils"
	"github.com/MrSnakeDoc/agenda/internal/version"
)

// DefaultURL is the public demo of The Events Calendar
const DefaultURL = "https://demo.theeventscalendar.com/wp-json/tribe/events/v1/events"

// Client fetches the events listing of a WordPress site running The Events Calendar
type Client struct {
	url    string
	client *http.Client
	mapper *Mapper
}

// NewClient creates a client for url. A zero timeout means no timeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		mapper: NewMapper(),
	}
}

// Name identifies the source in logs and /infra
func (c *Client) Name() string {
	return "tribe"
}

// URL returns the endpoint queried by Fetch
func (c *Client) URL() string {
	return c.url
}

// Fetch performs one GET of the listing. No query parameters are sent.
func (c *Client) Fetch(ctx context.Context) (sources.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return sources.Batch{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return sources.Batch{}, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return sources.Batch{}, &sources.StatusError{Source: c.Name(), Code: resp.StatusCode}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return sources.Batch{}, fmt.Errorf("failed to decode events: %w", err)
	}

	return c.mapper.MapEvents(payload.Events), nil
}
