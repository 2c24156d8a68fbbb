package analyzer

import (
	"regexp"
	"strings"
)

var (
	bulletPattern = regexp.MustCompile("[•◦▪‣·]")
	urlPattern    = regexp.MustCompile(`https?://\S+`)
	pagePattern   = regexp.MustCompile(`(?i)\bpage\s*\d+\b`)
	capsHeaderRe  = regexp.MustCompile(`\n[ \t]*([A-Z][A-Z ]{2,})[ \t]*\n`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// NormalizeText cleans raw extracted resume text into the canonical form the
// rest of the pipeline operates on: printable ASCII only, single-spaced, no
// bullet glyphs, URLs or page-number artifacts. Empty input yields empty
// output; there is no failure mode.
func NormalizeText(text string) string {
	// Bullet glyphs become spaces before the ASCII filter eats them, so
	// adjacent tokens don't fuse.
	text = bulletPattern.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || (r >= 0x20 && r < 0x7F) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = urlPattern.ReplaceAllString(text, "")
	text = pagePattern.ReplaceAllString(text, "")

	// Best-effort: collapse blank lines around ALL-CAPS header lines while
	// line structure still exists.
	text = capsHeaderRe.ReplaceAllString(text, "\n$1\n")

	// Collapse all whitespace runs last so the single-spaced invariant holds
	// regardless of what the removals above left behind.
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
