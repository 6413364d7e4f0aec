package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/agenda/internal/logger"
)

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"agenda.example.com", "agenda.example.com", true},
		{"agenda.example.com:8080", "agenda.example.com", true},
		{"agenda.example.com:8080", "agenda.example.com:8080", true},
		{"agenda.example.com:9090", "agenda.example.com:8080", false},
		{"a.example.com", "*.example.com", true},
		{"a.example.com:443", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil.com", "agenda.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestVisitorKeepsValidCookie(t *testing.T) {
	const id = "6f1c2a9e-3b7d-4c1a-9f0e-2d8b5a4c7e11"
	var seen string
	h := Visitor(false, logger.New("error", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = VisitorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != id {
		t.Fatalf("visitor = %q, want %q", seen, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("valid cookie should not be rewritten")
	}
}

func TestVisitorReplacesMalformedCookie(t *testing.T) {
	var seen string
	h := Visitor(true, logger.New("error", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = VisitorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: "../../etc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Value != seen || seen == "../../etc" {
		t.Errorf("cookie %q, context %q", cookies[0].Value, seen)
	}
	if !cookies[0].Secure {
		t.Errorf("cookie should be Secure")
	}
}

func TestRateLimitKeysByVisitor(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, RefillPerMin: 1})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(visitor string) int {
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		if visitor != "" {
			req = req.WithContext(WithVisitor(req.Context(), visitor))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("alice"); code != http.StatusNoContent {
		t.Fatalf("first request: %d", code)
	}
	if code := send("alice"); code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d", code)
	}
	// same IP, different visitor
	if code := send("bob"); code != http.StatusNoContent {
		t.Fatalf("other visitor: %d", code)
	}
	// no visitor falls back to the client IP
	if code := send(""); code != http.StatusNoContent {
		t.Fatalf("ip bucket: %d", code)
	}
	if code := send(""); code != http.StatusTooManyRequests {
		t.Fatalf("ip bucket second: %d", code)
	}
}
