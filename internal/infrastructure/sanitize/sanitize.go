// Package sanitize cleans inbound HTML before it is stored.
// Ticket bodies and notes arrive from the mailbox and from API clients;
// everything passes through one shared bluemonday policy.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips dangerous markup from untrusted HTML
type Sanitizer struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with the UGC policy plus the
// formatting attributes mail clients commonly emit
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("style").OnElements("span", "p", "div", "td", "th")
	policy.AllowAttrs("width", "height").OnElements("img", "table", "td", "th")
	policy.AllowElements("table", "thead", "tbody", "tr", "td", "th")

	return &Sanitizer{
		policy: policy,
		strict: bluemonday.StrictPolicy(),
	}
}

// Sanitize returns the HTML with scripts, event handlers, and unknown
// elements removed
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// PlainText strips all markup, collapsing whitespace runs.
// Used for mail subject fallbacks and text previews.
func (s *Sanitizer) PlainText(html string) string {
	text := s.strict.Sanitize(html)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
