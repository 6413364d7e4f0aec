package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/agenda/internal/domain"
	"github.com/MrSnakeDoc/agenda/internal/index"
	"github.com/MrSnakeDoc/agenda/internal/locale"
	"github.com/MrSnakeDoc/agenda/internal/modal"
	"github.com/MrSnakeDoc/agenda/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is the state of one page view.
type Page struct {
	Theme      theme.Theme
	Status     index.Status
	Events     []domain.Event
	Favorites  []domain.Event
	IsFavorite func(id int) bool
	Modal      *modal.View
	ReturnTo   string
}

type pageData struct {
	Lang        string
	Theme       theme.Theme
	Glyph       string
	M           locale.Messages
	Status      index.Status
	Grid        template.HTML
	GridMessage string
	Favorites   template.HTML
	Modal       *modal.View
	ReturnTo    string
}

// Renderer turns events into HTML using the embedded templates.
type Renderer struct {
	tmpl   *template.Template
	locale *locale.Locale
}

// New parses the embedded templates.
func New(loc *locale.Locale) (*Renderer, error) {
	if loc == nil {
		loc = locale.Default()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, locale: loc}, nil
}

// Locale returns the locale used for dates and labels.
func (r *Renderer) Locale() *locale.Locale {
	return r.locale
}

// Card renders one event under the given anchor prefix.
func (r *Renderer) Card(ev domain.Event, favorited bool, anchor string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "card", NewCardView(ev, favorited, r.locale, anchor)); err != nil {
		return "", fmt.Errorf("failed to render card %d: %w", ev.ID, err)
	}
	return template.HTML(buf.String()), nil
}

// Cards renders events in order with the same card template.
// A nil isFavorite marks every card as not favorited.
func (r *Renderer) Cards(events []domain.Event, isFavorite func(id int) bool, anchor string) (template.HTML, error) {
	var sb strings.Builder
	for _, ev := range events {
		card, err := r.Card(ev, isFavorite != nil && isFavorite(ev.ID), anchor)
		if err != nil {
			return "", err
		}
		sb.WriteString(string(card))
	}
	return template.HTML(sb.String()), nil
}

// Page writes the full document.
func (r *Renderer) Page(w io.Writer, p Page) error {
	data := pageData{
		Lang:     r.locale.String(),
		Theme:    p.Theme,
		Glyph:    p.Theme.Glyph(),
		M:        r.locale.Messages,
		Status:   p.Status,
		Modal:    p.Modal,
		ReturnTo: p.ReturnTo,
	}
	if data.Theme == "" {
		data.Theme = theme.Light
		data.Glyph = theme.Light.Glyph()
	}
	if data.ReturnTo == "" {
		data.ReturnTo = "/"
	}

	switch p.Status {
	case index.StatusLoaded:
		grid, err := r.Cards(p.Events, p.IsFavorite, GridAnchor)
		if err != nil {
			return err
		}
		data.Grid = grid
	case index.StatusEmpty:
		data.GridMessage = r.locale.Messages.NoEvents
	case index.StatusFailed:
		data.GridMessage = r.locale.Messages.FetchError
	default:
		data.GridMessage = r.locale.Messages.Loading
	}

	favorites, err := r.Cards(p.Favorites, p.IsFavorite, FavoriteAnchor)
	if err != nil {
		return err
	}
	data.Favorites = favorites

	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Static serves the embedded stylesheet under the stripped prefix.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
