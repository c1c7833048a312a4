package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips any markup from free text entered by users. Entities are decoded before
// the policy runs so encoded markup is stripped too; the result stays HTML-escaped.
func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(html.UnescapeString(s)))
}
