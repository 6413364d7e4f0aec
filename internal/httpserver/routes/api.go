package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	site := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	site.Get("/favorites.ics", handlers.FavoritesCalendar(d))
	site.Get("/api/events", handlers.Events(d))
	site.Get("/api/favorites", handlers.Favorites(d))
}
