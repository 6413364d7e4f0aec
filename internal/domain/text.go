package domain

import (
	"html"
	"regexp"
	"strings"
)

// ExcerptLength is the number of characters kept in a card description.
const ExcerptLength = 150

// Ellipsis is appended to every excerpt, truncated or not.
const Ellipsis = "..."

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML markup and decodes entities, leaving plain text.
// Example: "<p>Jazz &amp; Blues</p>" -> "Jazz & Blues"
func StripTags(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

// Excerpt returns the first ExcerptLength characters of the stripped text
// followed by Ellipsis.
func Excerpt(s string) string {
	text := StripTags(s)
	runes := []rune(text)
	if len(runes) > ExcerptLength {
		text = string(runes[:ExcerptLength])
	}
	return text + Ellipsis
}

// CleanTitle decodes entities the remote API leaves in titles ("Gala &#8211; 2025").
func CleanTitle(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
