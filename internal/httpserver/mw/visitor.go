package mw

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/agenda/internal/cookie"
	"github.com/MrSnakeDoc/agenda/internal/logger"
)

const (
	// VisitorCookie identifies a browser across visits
	VisitorCookie = "agenda_visitor"
	// VisitorCookieDays is the lifetime of the visitor cookie
	VisitorCookieDays = 365
)

type visitorKey struct{}

// Visitor makes sure every request carries a visitor id.
// A missing or malformed cookie is replaced by a fresh random UUID.
func Visitor(secure bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar := cookie.NewJar(w, r, cookie.WithSecure(secure))

			id, ok := jar.Get(VisitorCookie)
			if ok {
				if parsed, err := uuid.Parse(id); err == nil {
					id = parsed.String()
				} else {
					log.Debug("malformed visitor cookie, issuing a new one", logger.String("value", id))
					ok = false
				}
			}
			if !ok {
				id = uuid.NewString()
				jar.Set(VisitorCookie, id, VisitorCookieDays)
			}

			next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), id)))
		})
	}
}

// WithVisitor returns a copy of ctx carrying the visitor id
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorID returns the visitor id set by the Visitor middleware, or ""
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
