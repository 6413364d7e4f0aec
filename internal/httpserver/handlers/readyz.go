package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/index"
)

type readyzResponse struct {
	Ready  bool         `json:"ready"`
	Events index.Status `json:"events"`
	Store  string       `json:"store"`
}

// Readyz reports ready once the first fetch has settled and the favorites
// store answers. A failed fetch still counts as settled: the page renders its
// error message.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := d.Index.Status()
		storeErr := pingStore(r.Context(), d)

		resp := readyzResponse{
			Ready:  status != index.StatusPending && storeErr == nil,
			Events: status,
			Store:  "ok",
		}
		if storeErr != nil {
			resp.Store = storeErr.Error()
		}

		code := http.StatusOK
		if !resp.Ready {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, resp)
	}
}

func pingStore(ctx context.Context, d deps.Deps) error {
	if d.Store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.Store.Ping(ctx)
}
