package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/agenda/internal/cookie"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/logger"
	"github.com/MrSnakeDoc/agenda/internal/theme"
)

// ToggleTheme flips the theme cookie and sends the visitor back where they were.
func ToggleTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jar := cookie.NewJar(w, r, cookie.WithSecure(d.SecureCookies))
		next := theme.Load(jar).Toggle()
		d.Logger.Debug("theme toggled", logger.String("theme", string(next)))

		http.Redirect(w, r, safeReturn(r.PostFormValue("return")), http.StatusSeeOther)
	}
}
