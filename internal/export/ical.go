package export

import (
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

const (
	ProductID = "-//agenda//favorites//FR"
	// floatingLayout writes wall-clock times without a zone, matching how events are displayed
	floatingLayout = "20060102T150405"
)

// UID returns the stable iCalendar identifier of an event.
func UID(id int) string {
	return "event-" + strconv.Itoa(id) + "@agenda"
}

// Calendar renders events as a VCALENDAR with one VEVENT per event.
func Calendar(name string, events []domain.Event, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if name != "" {
		cal.SetXWRCalName(name)
	}

	for _, ev := range events {
		vevent := cal.AddEvent(UID(ev.ID))
		vevent.SetDtStampTime(now)
		vevent.SetSummary(ev.Title)
		if desc := strings.TrimSpace(domain.StripTags(ev.Description)); desc != "" {
			vevent.SetDescription(desc)
		}
		if !ev.StartDate.IsZero() {
			vevent.SetProperty(ical.ComponentPropertyDtStart, ev.StartDate.Format(floatingLayout))
		}
		if !ev.EndDate.IsZero() {
			vevent.SetProperty(ical.ComponentPropertyDtEnd, ev.EndDate.Format(floatingLayout))
		}
		if lines := ev.Venue.Lines(); len(lines) > 0 {
			vevent.SetLocation(strings.Join(lines, ", "))
		}
		if ev.URL != "" {
			vevent.SetURL(ev.URL)
		}
	}

	return cal.Serialize()
}
