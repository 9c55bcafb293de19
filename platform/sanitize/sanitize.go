// Package sanitize provides text sanitization utilities to prevent XSS attacks.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
// Entities are decoded afterwards and the result is stripped again to catch
// tags smuggled in encoded form.
func StripHTML(s string) string {
	result := strict.Sanitize(s)
	result = html.UnescapeString(result)
	result = strict.Sanitize(result)
	result = html.UnescapeString(result)
	return strings.TrimSpace(result)
}

// Text sanitizes a string for safe text display by stripping HTML and
// collapsing runs of whitespace. Used for messages echoed from the lead API.
func Text(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}
