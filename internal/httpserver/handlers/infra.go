package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/index"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status,omitempty"`
	EventsLoaded *int   `json:"events_loaded,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	Cached       *int   `json:"cached,omitempty"`
	Visitors     *int   `json:"visitors,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the events source and the favorites store.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.Index.Snapshot()
		count := len(snap.Events)
		lastReload := "never"
		if !snap.LastReload.IsZero() {
			lastReload = snap.LastReload.Format("2006-01-02 15:04:05")
		}

		// pending is the first fetch still in flight, not a failure
		source := componentStatus{
			OK:           snap.Status != index.StatusFailed,
			Name:         d.SourceName,
			Status:       string(snap.Status),
			EventsLoaded: &count,
			LastReload:   lastReload,
			Error:        snap.LastError,
		}
		if snap.Status == index.StatusPending {
			source.Impact = "loading"
		}

		cached := d.Favorites.Cached()
		store := componentStatus{
			OK:     true,
			Name:   d.StoreName,
			Cached: &cached,
		}
		if err := pingStore(r.Context(), d); err != nil {
			store.OK = false
			store.Impact = "favorites-unavailable"
			store.Error = err.Error()
		} else if n, ok, err := d.Favorites.Stored(r.Context()); ok && err == nil {
			store.Visitors = &n
		}

		components := map[string]componentStatus{
			"source": source,
			"store":  store,
		}
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if source, ok := components["source"]; ok && !source.OK {
		return "critical" // empty grid with an error message
	}
	if store, ok := components["store"]; ok && !store.OK {
		return "degraded" // events visible, favorites not
	}
	return "operational"
}
