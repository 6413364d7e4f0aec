package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/agenda/internal/export"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
	"github.com/MrSnakeDoc/agenda/internal/logger"
	"github.com/MrSnakeDoc/agenda/internal/render"
)

// ToggleFavorite adds or removes an event from the visitor's favorites.
// The event is resolved by id: fetched events first, then saved snapshots,
// so a favorite can still be removed after it left the listing.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := eventID(r)
		if !ok {
			http.Error(w, "invalid event id", http.StatusBadRequest)
			return
		}

		visitor := mw.VisitorID(r.Context())
		store, err := d.Favorites.For(r.Context(), visitor)
		if err != nil {
			d.Logger.Error("failed to load favorites",
				logger.String("visitor", visitor),
				logger.Error(err))
			http.Error(w, "favorites unavailable", http.StatusServiceUnavailable)
			return
		}

		ev, found := findEvent(d, store, id)
		if !found {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		added, err := d.Favorites.Toggle(r.Context(), visitor, id, ev)
		if err != nil {
			d.Logger.Error("failed to toggle favorite",
				logger.String("visitor", visitor),
				logger.Int("event_id", id),
				logger.Error(err))
			http.Error(w, "favorites unavailable", http.StatusServiceUnavailable)
			return
		}

		d.Logger.Info("favorite toggled",
			logger.String("visitor", visitor),
			logger.Int("event_id", id),
			logger.Bool("added", added))

		ret := r.PostFormValue("return")
		if ret == "" {
			ret = "/#" + render.GridAnchor + strconv.Itoa(id)
		}
		http.Redirect(w, r, safeReturn(ret), http.StatusSeeOther)
	}
}

// FavoritesCalendar serves the visitor's favorites as an iCalendar file.
func FavoritesCalendar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := visitorFavorites(d, r)
		if store == nil {
			http.Error(w, "favorites unavailable", http.StatusServiceUnavailable)
			return
		}

		body := export.Calendar(d.Renderer.Locale().Messages.FavoritesTitle, store.List(), d.Now())

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="agenda-favorites.ics"`)
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write([]byte(body)); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
