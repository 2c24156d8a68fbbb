package analyzer

import (
	"regexp"
	"strings"
)

// SectionNames lists the six canonical resume sections in display order.
var SectionNames = []string{"contact", "summary", "experience", "education", "skills", "projects"}

var sectionHeaderPattern = regexp.MustCompile(`(?im)^(contact|summary|experience|education|skills|projects)\s*:?\s*$`)

// Keyword fallback per section, used when no explicit header is present.
var sectionKeywords = map[string]*regexp.Regexp{
	"contact":    regexp.MustCompile(`(?i)contact|info|details|email|phone|address|linkedin`),
	"summary":    regexp.MustCompile(`(?i)summary|objective|profile|about me`),
	"experience": regexp.MustCompile(`(?i)experience|work\s*history|employment`),
	"education":  regexp.MustCompile(`(?i)education|academic|degree|university`),
	"skills":     regexp.MustCompile(`(?i)skills|proficient|competencies|expertise`),
	"projects":   regexp.MustCompile(`(?i)projects|portfolio|case\s*studies`),
}

// Span is a half-open character-offset range [Start, End) within normalized text.
type Span struct {
	Start int
	End   int
}

// SectionMap holds per-section presence plus offset spans for sections that
// were located by an explicit header.
type SectionMap struct {
	Present map[string]bool
	Spans   map[string]Span
}

// DetectSections locates the canonical sections in normalized text. Presence
// is true when an explicit header matched, or failing that when the
// section's keyword pattern matches anywhere. Spans exist only for explicit
// headers: each span runs from the end of its header to the start of the
// next header, or to text end for the last one. Headers are taken in raw
// match order; out-of-order or overlapping headers are not re-sorted.
func DetectSections(text string) SectionMap {
	spans := findSectionSpans(text)

	present := make(map[string]bool, len(SectionNames))
	for _, name := range SectionNames {
		if _, ok := spans[name]; ok {
			present[name] = true
			continue
		}
		present[name] = sectionKeywords[name].MatchString(text)
	}

	return SectionMap{Present: present, Spans: spans}
}

// findSectionSpans maps each explicitly-headed section to its content span.
// A repeated header keeps the last occurrence, matching map overwrite order.
func findSectionSpans(text string) map[string]Span {
	matches := sectionHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	spans := make(map[string]Span, len(matches))

	for i, m := range matches {
		name := strings.ToLower(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		spans[name] = Span{Start: start, End: end}
	}

	return spans
}

// MissingSections returns the canonical names whose presence flag is false,
// in display order.
func (sm SectionMap) MissingSections() []string {
	missing := make([]string, 0, len(SectionNames))
	for _, name := range SectionNames {
		if !sm.Present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
