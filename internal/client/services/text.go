package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainText = bluemonday.StrictPolicy()

// sanitizeText strips markup from user-entered text and trims it. Entities
// escaped by the policy are decoded again since the result is sent as JSON,
// not rendered as HTML.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}
