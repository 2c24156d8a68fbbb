package analyzer

import (
	"regexp"
	"strings"

	"atsblitz/internal/types"
)

// metricPattern matches quantifiable achievements: currency, percentages,
// multipliers, pluses, year counts, bare 3+ digit numbers and number+unit
// tokens. Matches of length <= 2 are filtered out downstream.
var metricPattern = regexp.MustCompile(
	`(?i)\$\d[\d,]+|\d+\s*%|\d+\s*x|\d+\s*\+|\d+\s*years?|\b\d{3,}\b|\d+\s*[\w/]+|\d+\+?`,
)

// dateRangePattern matches "Month YYYY - Month YYYY" or "Month YYYY - Present"
// with hyphen, en-dash or em-dash separators.
var dateRangePattern = regexp.MustCompile(
	`(?i)(?:Jan|Feb|Mar|April|May|June|July|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}` +
		`\s*[-\x{2013}\x{2014}]\s*` +
		`(?:Present|(?:Jan|Feb|Mar|April|May|June|July|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`,
)

var (
	genericPhrasePattern = regexp.MustCompile(`(?i)team\s*player|hard\s*worker|detail\s*oriented|go\s*getter`)
	// First-person pronouns are matched case-sensitively: a capitalized "I"
	// anywhere, lowercase "my"/"me" as written mid-sentence.
	pronounPattern      = regexp.MustCompile(`\bI\b|\bmy\b|\bme\b`)
	passiveVoicePattern = regexp.MustCompile(`(?i)\bwas\s+\w+ed\b|\bwere\s+\w+ed\b|\b(?:was|were)\s+responsible\b|\bby\s+the\b`)
)

// FindMetrics returns every metric-like substring in order of appearance.
// Duplicates are kept; each occurrence counts toward the score.
func FindMetrics(text string) []string {
	all := metricPattern.FindAllString(text, -1)
	metrics := make([]string, 0, len(all))
	for _, m := range all {
		if len(m) > 2 {
			metrics = append(metrics, m)
		}
	}
	return metrics
}

// FindDateRanges returns matched employment date ranges in order of appearance.
func FindDateRanges(text string) []string {
	return dateRangePattern.FindAllString(text, -1)
}

// MatchActionVerbs returns the distinct vocabulary verbs contained in the
// text (case-insensitive substring containment), in vocabulary order.
func MatchActionVerbs(text string) []string {
	lower := strings.ToLower(text)
	matched := make([]string, 0, 16)
	for _, verb := range ActionVerbs() {
		if strings.Contains(lower, verb) {
			matched = append(matched, verb)
		}
	}
	return matched
}

// CheckQuality detects stylistic weaknesses. The pronoun check is
// section-aware: only text outside the summary and profile spans counts.
// When no spans are known the entire text is scanned.
func CheckQuality(text string, spans map[string]Span) types.QualityFlags {
	flags := types.QualityFlags{
		GenericPhrases: genericPhrasePattern.MatchString(text),
		PassiveVoice:   passiveVoicePattern.MatchString(text),
	}

	if len(spans) == 0 {
		flags.Pronouns = pronounPattern.MatchString(text)
		return flags
	}

	for name, span := range spans {
		if name == "summary" || name == "profile" {
			continue
		}
		if span.Start < 0 || span.End > len(text) || span.Start > span.End {
			continue
		}
		if pronounPattern.MatchString(text[span.Start:span.End]) {
			flags.Pronouns = true
			break
		}
	}

	return flags
}
