package cookie

import (
	"net/http"
	"strings"
	"time"
)

// Jar reads cookies from a request and writes them to the matching response.
// Values written with Set are visible to Get for the rest of the request.
type Jar struct {
	r       *http.Request
	w       http.ResponseWriter
	secure  bool
	now     func() time.Time
	pending map[string]string
}

// Option configures a Jar.
type Option func(*Jar)

// WithSecure marks written cookies as Secure (HTTPS only).
func WithSecure(secure bool) Option {
	return func(j *Jar) { j.secure = secure }
}

// WithClock overrides time.Now for expiry computation.
func WithClock(now func() time.Time) Option {
	return func(j *Jar) { j.now = now }
}

// NewJar binds a jar to one request/response pair.
func NewJar(w http.ResponseWriter, r *http.Request, opts ...Option) *Jar {
	j := &Jar{
		r:       r,
		w:       w,
		now:     time.Now,
		pending: make(map[string]string),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Set stores value under name with an absolute expiry days from now, scoped to the whole site.
func (j *Jar) Set(name, value string, days int) {
	expires := j.now().Add(time.Duration(days) * 24 * time.Hour)
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   days * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
	j.pending[name] = value
}

// Get returns the cookie value, or false when no cookie with that name is set.
func (j *Jar) Get(name string) (string, bool) {
	if v, ok := j.pending[name]; ok {
		return v, true
	}
	if j.r == nil {
		return "", false
	}
	// HTTP/2 clients may split cookies over several headers
	return Lookup(strings.Join(j.r.Header.Values("Cookie"), "; "), name)
}

// Lookup parses a Cookie header ("a=1; theme=dark") and returns the value of name.
// Pairs are trimmed and matched on the exact "name=" prefix.
func Lookup(header, name string) (string, bool) {
	prefix := name + "="
	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimSpace(pair)
		if strings.HasPrefix(pair, prefix) {
			return pair[len(prefix):], true
		}
	}
	return "", false
}
