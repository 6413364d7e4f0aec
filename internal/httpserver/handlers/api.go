package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
)

type favoritesResponse struct {
	Visitor   string         `json:"visitor"`
	Favorites []domain.Event `json:"favorites"`
}

// Events returns the grid status and the fetched events.
func Events(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Index.Snapshot())
	}
}

// Favorites returns the visitor's favorites, oldest first.
func Favorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := visitorFavorites(d, r)
		if store == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "favorites unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, favoritesResponse{
			Visitor:   mw.VisitorID(r.Context()),
			Favorites: store.List(),
		})
	}
}
