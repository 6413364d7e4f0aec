package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	operator := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	operator.Get("/readyz", handlers.Readyz(d))
	operator.Get("/infra", handlers.Infra(d))
}
