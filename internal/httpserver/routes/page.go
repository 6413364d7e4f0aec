package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
	"github.com/MrSnakeDoc/agenda/internal/render"
)

func init() { Register(registerPage) }

func registerPage(r chi.Router, d deps.Deps) {
	site := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	site.Get("/", handlers.Page(d))
	site.Get("/events/{id}", handlers.EventDetails(d))
	site.Handle("/static/*", http.StripPrefix("/static/", render.Static()))
}
