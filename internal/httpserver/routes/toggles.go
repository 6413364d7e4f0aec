package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/mw"
)

func init() { Register(registerToggles) }

// registerToggles mounts the POST controls behind one shared limiter.
func registerToggles(r chi.Router, d deps.Deps) {
	limited := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:        d.ToggleBurst,
			RefillPerMin: d.ToggleRefill,
			MaxEntries:   10000,
			TrustProxy:   d.TrustProxy,
		}),
	)
	limited.Post("/theme", handlers.ToggleTheme(d))
	limited.Post("/favorites/{id}", handlers.ToggleFavorite(d))
}
