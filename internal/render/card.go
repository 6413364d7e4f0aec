package render

import (
	"strconv"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/locale"
)

const (
	starOn  = "★"
	starOff = "☆"
)

// Anchor prefixes keep element ids unique when an event shows up in
// both the grid and the favorites panel.
const (
	GridAnchor     = "event-"
	FavoriteAnchor = "fav-event-"
)

// CardView is everything the card template needs for one event.
// Controls only carry the event id; handlers resolve it through the index.
type CardView struct {
	ID         int
	Anchor     string
	Title      string
	ImageURL   string
	Date       string
	Excerpt    string
	URL        string
	Favorited  bool
	Star       string
	DetailsURL string
	ReturnTo   string
	Labels     locale.Messages
}

// NewCardView maps an event and its favorite state to a card whose element
// id is anchor followed by the event id.
func NewCardView(ev domain.Event, favorited bool, loc *locale.Locale, anchor string) CardView {
	if loc == nil {
		loc = locale.Default()
	}
	if anchor == "" {
		anchor = GridAnchor
	}
	id := anchor + strconv.Itoa(ev.ID)
	star := starOff
	if favorited {
		star = starOn
	}
	return CardView{
		ID:         ev.ID,
		Anchor:     id,
		Title:      ev.Title,
		ImageURL:   ev.ImageURL(),
		Date:       loc.FormatDateTime(ev.StartDate.Time),
		Excerpt:    domain.Excerpt(ev.Description),
		URL:        ev.URL,
		Favorited:  favorited,
		Star:       star,
		DetailsURL: "/?details=" + strconv.Itoa(ev.ID),
		ReturnTo:   "/#" + id,
		Labels:     loc.Messages,
	}
}
