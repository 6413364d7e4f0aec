package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/favorites"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
	"github.com/MrSnakeDoc/agenda/internal/logger"
)

// safeReturn keeps redirects on this site. Anything but a local absolute path becomes "/".
func safeReturn(v string) string {
	if !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") || strings.HasPrefix(v, "/\\") {
		return "/"
	}
	return v
}

// eventID parses the {id} URL parameter.
func eventID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// visitorFavorites returns the favorites of the requesting visitor.
// On a store failure it logs and returns nil, callers render an empty panel.
func visitorFavorites(d deps.Deps, r *http.Request) *favorites.Store {
	visitor := mw.VisitorID(r.Context())
	store, err := d.Favorites.For(r.Context(), visitor)
	if err != nil {
		d.Logger.Warn("failed to load favorites",
			logger.String("visitor", visitor),
			logger.Error(err))
		return nil
	}
	return store
}

// findEvent resolves an id against the fetched events first, then the
// visitor's saved snapshots.
func findEvent(d deps.Deps, store *favorites.Store, id int) (domain.Event, bool) {
	if ev, ok := d.Index.GetEvent(id); ok {
		return ev, true
	}
	if store != nil {
		return store.Lookup(id)
	}
	return domain.Event{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
