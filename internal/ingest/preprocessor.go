package ingest

import (
	"strings"
	"unicode"
)

// Preprocess normalizes text for storage: trims, collapses runs of horizontal
// whitespace to a single space, and collapses blank-line runs to a single
// newline. Newlines are preserved because the snippet builder splits body
// text on them.
func Preprocess(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	wasNewline := false
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			if !wasNewline {
				b.WriteRune('\n')
				wasNewline = true
			}
			wasSpace = true
		case unicode.IsSpace(r):
			if !wasSpace {
				b.WriteRune(' ')
				wasSpace = true
			}
		default:
			b.WriteRune(r)
			wasSpace = false
			wasNewline = false
		}
	}
	return strings.TrimSpace(b.String())
}
