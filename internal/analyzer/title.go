package analyzer

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleRewrite maps an abbreviation pattern to its canonical expansion.
// Patterns are written so that re-running them over their own output is a
// no-op, which keeps standardization idempotent.
type titleRewrite struct {
	pattern *regexp.Regexp
	repl    string
}

var titleRewrites = []titleRewrite{
	{regexp.MustCompile(`\bweb\s*dev\b`), "web developer"},
	{regexp.MustCompile(`\bsoft(?:ware)?\s*eng(?:ineer)?\b`), "software engineer"},
	{regexp.MustCompile(`\bdata\s*sci(?:entist)?\b`), "data scientist"},
	{regexp.MustCompile(`\bux\s*ui\b|\buxui\b`), "ux designer"},
	{regexp.MustCompile(`\bfull\s*stack(?:\s+developer)?\b`), "full stack developer"},
	{regexp.MustCompile(`\bfront\s*end(?:\s+developer)?\b`), "front end developer"},
	{regexp.MustCompile(`\bback\s*end(?:\s+developer)?\b`), "back end developer"},
}

var (
	titlePunctRe     = regexp.MustCompile(`[^a-z0-9\s]`)
	seniorityPrefix  = regexp.MustCompile(`^(?:senior|junior|lead|principal)\s+`)
	romanSuffix      = regexp.MustCompile(`\s+(?:i|ii|iii|iv|v)$`)
	titleDisplayCase = cases.Title(language.English)
)

// StandardizeTitle canonicalizes a free-text job title for display:
// lowercase, punctuation stripped, known abbreviations expanded, seniority
// prefix and roman-numeral suffix removed, then Title Cased. Returns "" for
// empty or whitespace-only input. Idempotent.
func StandardizeTitle(title string) string {
	key := StandardizeTitleKey(title)
	if key == "" {
		return ""
	}
	return titleDisplayCase.String(key)
}

// StandardizeTitleKey returns the lowercase canonical form used everywhere
// titles are compared. This is the single authoritative rule set; matching
// and learning paths both go through it.
func StandardizeTitleKey(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return ""
	}

	title = titlePunctRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))

	for _, rw := range titleRewrites {
		title = rw.pattern.ReplaceAllString(title, rw.repl)
	}

	// Strip repeatedly so stacked qualifiers ("senior lead engineer ii")
	// reduce to a stable form.
	for {
		next := seniorityPrefix.ReplaceAllString(title, "")
		next = romanSuffix.ReplaceAllString(next, "")
		if next == title {
			break
		}
		title = next
	}

	return strings.TrimSpace(title)
}
