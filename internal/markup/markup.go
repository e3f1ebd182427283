// Package markup handles the HTML-flavored escaping and tag stripping shared
// by subtitle text codecs.
package markup

import (
	"regexp"
	"strings"
)

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		" ", "&nbsp;",
	)
	htmlUnescaper = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&nbsp;", " ",
		"&#39;", "'",
		"&#x27;", "'",
	)
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// EscapeHTML replaces ampersands, left angle brackets, and non-breaking spaces
// with entity forms in a single left-to-right pass.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// UnescapeHTML restores the recognized entities to literal characters.
// Unrecognized entities pass through unchanged.
func UnescapeHTML(text string) string {
	return htmlUnescaper.Replace(text)
}

// StripTags removes every tag-shaped "<...>" span. It has no nesting
// awareness; callers that need structure parse tags themselves first.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}
