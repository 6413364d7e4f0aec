package theme

// Theme is the page color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

const (
	// CookieName holds the persisted theme.
	CookieName = "theme"
	// CookieDays is the lifetime of the theme cookie.
	CookieDays = 365
)

// CookieStore is the cookie half of the persistence adapter.
type CookieStore interface {
	Get(name string) (string, bool)
	Set(name, value string, days int)
}

// Parse maps a persisted value to a Theme. Anything but "dark" is Light.
func Parse(v string) Theme {
	if Theme(v) == Dark {
		return Dark
	}
	return Light
}

// Glyph is the indicator shown on the toggle control.
func (t Theme) Glyph() string {
	if t == Light {
		return "☀️"
	}
	return "🌙"
}

// Controller tracks the theme of one visitor.
type Controller struct {
	cookies CookieStore
	current Theme
}

// Load reads the initial theme from the cookie store, defaulting to Light.
func Load(cookies CookieStore) *Controller {
	c := &Controller{cookies: cookies, current: Light}
	if v, ok := cookies.Get(CookieName); ok {
		c.current = Parse(v)
	}
	return c
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	return c.current
}

// Toggle flips the theme and persists it before returning the new value.
func (c *Controller) Toggle() Theme {
	next := Light
	if c.current == Light {
		next = Dark
	}
	c.current = next
	c.cookies.Set(CookieName, string(next), CookieDays)
	return next
}
