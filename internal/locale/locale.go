package locale

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// Messages holds every user-facing string of the page.
type Messages struct {
	PageTitle       string
	FavoritesTitle  string
	EventsTitle     string
	Loading         string
	NoEvents        string
	FetchError      string
	NoFavorites     string
	ViewEvent       string
	Details         string
	Description     string
	DateAndTime     string
	From            string
	To              string
	Location        string
	Unspecified     string
	ExternalLink    string
	ViewOnSource    string
	Close           string
	ToggleTheme     string
	ToggleFavorite  string
	ExportFavorites string
}

// Locale formats dates and provides labels for one language.
type Locale struct {
	Tag      language.Tag
	Messages Messages
	layout   string        // Go reference layout, month names are translated by monday
	names    monday.Locale // locale used for month names
}

var french = &Locale{
	Tag: language.French,
	Messages: Messages{
		PageTitle:       "Agenda",
		FavoritesTitle:  "Mon planning",
		EventsTitle:     "Événements à venir",
		Loading:         "Chargement des événements...",
		NoEvents:        "Aucun événement disponible pour le moment.",
		FetchError:      "Une erreur est survenue lors du chargement des événements.",
		NoFavorites:     "Aucun événement dans votre planning",
		ViewEvent:       "Voir l'événement",
		Details:         "Détails",
		Description:     "Description",
		DateAndTime:     "Date et Heure",
		From:            "Du",
		To:              "Au",
		Location:        "Lieu",
		Unspecified:     "Lieu non spécifié",
		ExternalLink:    "Lien externe",
		ViewOnSource:    "Voir l'événement sur le site source",
		Close:           "Fermer",
		ToggleTheme:     "Changer de thème",
		ToggleFavorite:  "Ajouter ou retirer du planning",
		ExportFavorites: "Exporter (.ics)",
	},
	// 15 mars 2025 à 14:30
	layout: "2 January 2006 à 15:04",
	names:  monday.LocaleFrFR,
}

var english = &Locale{
	Tag: language.English,
	Messages: Messages{
		PageTitle:       "Agenda",
		FavoritesTitle:  "My schedule",
		EventsTitle:     "Upcoming events",
		Loading:         "Loading events...",
		NoEvents:        "No events available at the moment.",
		FetchError:      "An error occurred while loading events.",
		NoFavorites:     "No events in your schedule",
		ViewEvent:       "View event",
		Details:         "Details",
		Description:     "Description",
		DateAndTime:     "Date and time",
		From:            "From",
		To:              "To",
		Location:        "Location",
		Unspecified:     "Location not specified",
		ExternalLink:    "External link",
		ViewOnSource:    "View the event on the source site",
		Close:           "Close",
		ToggleTheme:     "Toggle theme",
		ToggleFavorite:  "Add to or remove from schedule",
		ExportFavorites: "Export (.ics)",
	},
	// March 15, 2025 at 02:30 PM
	layout: "January 2, 2006 at 03:04 PM",
	names:  monday.LocaleEnUS,
}

// supported is ordered by preference: the first entry is the fallback.
var supported = []*Locale{french, english}

var matcher = language.NewMatcher([]language.Tag{french.Tag, english.Tag})

// Match picks the closest supported locale for the given preferences
// (BCP 47 tags or Accept-Language values). French is the fallback.
func Match(prefs ...string) *Locale {
	_, idx := language.MatchStrings(matcher, prefs...)
	if idx < 0 || idx >= len(supported) {
		return french
	}
	return supported[idx]
}

// Default returns the French locale.
func Default() *Locale {
	return french
}

// FormatDateTime renders day, long month, year, hour and minute.
func (l *Locale) FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return monday.Format(t, l.layout, l.names)
}

// String returns the BCP 47 tag, used for the html lang attribute.
func (l *Locale) String() string {
	return l.Tag.String()
}
