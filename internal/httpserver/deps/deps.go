package deps

import (
	"time"

	"github.com/MrSnakeDoc/agenda/internal/favorites"
	"github.com/MrSnakeDoc/agenda/internal/index"
	"github.com/MrSnakeDoc/agenda/internal/kv"
	"github.com/MrSnakeDoc/agenda/internal/logger"
	"github.com/MrSnakeDoc/agenda/internal/render"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time    // for testing, defaults to time.Now
	AllowedHosts  []string            // Host headers allowed to access the server
	AllowedCIDRS  []string            // IPs allowed to access operator endpoints
	TrustProxy    bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	SecureCookies bool                // mark cookies Secure
	Index         *index.EventIndex   // last fetched events
	Favorites     *favorites.Registry // per-visitor favorites
	Renderer      *render.Renderer    // page templates, carries the locale
	SourceName    string              // events source, for /infra
	Store         kv.Checker          // durable favorites backend, nil when purely in memory
	StoreName     string              // "redis" | "bolt" | "memory"
	ReloadTrigger chan struct{}       // Channel to trigger a manual events reload
	ToggleBurst   int                 // rate limit of POST toggles, per visitor
	ToggleRefill  int                 // tokens refilled per minute
}

// Now returns the current time using TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
