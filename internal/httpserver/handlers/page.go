package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/agenda/internal/cookie"
	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/logger"
	"github.com/MrSnakeDoc/agenda/internal/modal"
	"github.com/MrSnakeDoc/agenda/internal/render"
	"github.com/MrSnakeDoc/agenda/internal/theme"
)

// Page renders the board: theme toggle, favorites panel, events grid and,
// when ?details=<id> names a known event, the details modal.
// ?dismiss=close|backdrop|content replays a click on the open modal.
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jar := cookie.NewJar(w, r, cookie.WithSecure(d.SecureCookies))
		th := theme.Load(jar)

		store := visitorFavorites(d, r)
		var (
			favs       []domain.Event
			isFavorite func(int) bool
		)
		if store != nil {
			favs = store.List()
			isFavorite = store.IsFavorite
		}

		status := http.StatusOK
		ctrl := modal.New(d.Renderer.Locale())
		q := r.URL.Query()
		if raw := q.Get("details"); raw != "" {
			id, err := strconv.Atoi(raw)
			ev, found := domain.Event{}, false
			if err == nil {
				ev, found = findEvent(d, store, id)
			}
			if found {
				ctrl.Show(ev)
			} else {
				status = http.StatusNotFound
			}
		}
		if target, ok := modal.ParseTarget(q.Get("dismiss")); ok {
			ctrl.HandleClick(target)
		}

		var view *modal.View
		if v, ok := ctrl.View(); ok {
			view = &v
		}

		snap := d.Index.Snapshot()
		var buf bytes.Buffer
		err := d.Renderer.Page(&buf, render.Page{
			Theme:      th.Current(),
			Status:     snap.Status,
			Events:     snap.Events,
			Favorites:  favs,
			IsFavorite: isFavorite,
			Modal:      view,
			ReturnTo:   r.URL.RequestURI(),
		})
		if err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		if _, err := w.Write(buf.Bytes()); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

// EventDetails redirects /events/{id} to the page with the modal open.
func EventDetails(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := eventID(r)
		if !ok {
			http.Error(w, "invalid event id", http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/?details="+strconv.Itoa(id), http.StatusFound)
	}
}
