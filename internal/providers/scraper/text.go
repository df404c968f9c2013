package scraper

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultWidth is the column horoscope text is filled to
const DefaultWidth = 70

// strict removes every tag. Policies are safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s and resolves character references
func PlainText(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// NormalizeWhitespace collapses multiple spaces into one
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fill collapses whitespace in text, wraps it at width columns and
// terminates it with a newline. Words longer than width are broken.
func Fill(text string, width int) []byte {
	if width <= 0 {
		width = DefaultWidth
	}

	wrapped := ansi.Wrap(NormalizeWhitespace(text), width, "")

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
