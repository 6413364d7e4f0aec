package modal

import (
	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/locale"
)

// Target is where a click landed while the modal is visible.
type Target string

const (
	TargetClose    Target = "close"    // the close control
	TargetBackdrop Target = "backdrop" // outside the content area
	TargetContent  Target = "content"  // inside the content area
)

// ParseTarget maps a query value to a Target.
func ParseTarget(v string) (Target, bool) {
	switch t := Target(v); t {
	case TargetClose, TargetBackdrop, TargetContent:
		return t, true
	}
	return "", false
}

// View is the content of the detail overlay.
type View struct {
	EventID     int
	Title       string
	Description string
	Start       string
	End         string
	VenueLines  []string
	Unspecified string // placeholder shown when VenueLines is empty
	URL         string
}

// Controller holds the modal state of one page: hidden, or visible with one event.
type Controller struct {
	locale  *locale.Locale
	visible bool
	view    View
}

// New returns a hidden modal.
func New(loc *locale.Locale) *Controller {
	if loc == nil {
		loc = locale.Default()
	}
	return &Controller{locale: loc}
}

// Show populates the content area from ev and makes the modal visible.
func (c *Controller) Show(ev domain.Event) {
	view := View{
		EventID:     ev.ID,
		Title:       ev.Title,
		Description: domain.StripTags(ev.Description),
		Start:       c.locale.FormatDateTime(ev.StartDate.Time),
		End:         c.locale.FormatDateTime(ev.EndDate.Time),
		VenueLines:  ev.Venue.Lines(),
		URL:         ev.URL,
	}
	if len(view.VenueLines) == 0 {
		view.Unspecified = c.locale.Messages.Unspecified
	}
	c.view = view
	c.visible = true
}

// Hide makes the modal invisible. The last view is kept.
func (c *Controller) Hide() {
	c.visible = false
}

// HandleClick applies a click. Clicks inside the content area are ignored.
func (c *Controller) HandleClick(t Target) {
	switch t {
	case TargetClose, TargetBackdrop:
		c.Hide()
	}
}

// Visible reports whether the overlay is shown.
func (c *Controller) Visible() bool {
	return c.visible
}

// View returns the current content and whether it is visible.
func (c *Controller) View() (View, bool) {
	return c.view, c.visible
}
