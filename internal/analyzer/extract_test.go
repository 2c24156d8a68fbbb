package analyzer

import (
	"reflect"
	"testing"

	"atsblitz/internal/types"
)

func TestFindMetrics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "percentage",
			text:     "Increased sales by 30%",
			expected: []string{"30%"},
		},
		{
			name:     "currency",
			text:     "Saved $1,200 annually",
			expected: []string{"$1,200"},
		},
		{
			name:     "year count",
			text:     "Over 3 years of work",
			expected: []string{"3 years"},
		},
		{
			name:     "bare small number filtered",
			text:     "A team of 5",
			expected: []string{},
		},
		{
			name:     "large bare number kept",
			text:     "Handled 1500 tickets",
			expected: []string{"1500"},
		},
		{
			name:     "no metrics",
			text:     "Worked on various projects",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMetrics(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("FindMetrics(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestFindMetricsCountsDuplicates(t *testing.T) {
	got := FindMetrics("Grew revenue 20% in spring and 20% in autumn")
	if len(got) != 2 {
		t.Fatalf("expected both occurrences counted, got %v", got)
	}
}

func TestFindDateRanges(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
	}{
		{
			name:  "month year to present",
			text:  "Acme Corp May 2020 - Present",
			count: 1,
		},
		{
			name:  "month year to month year with en dash",
			text:  "Jan 2018 – Dec 2019",
			count: 1,
		},
		{
			name:  "em dash separator",
			text:  "March 2015 — June 2017",
			count: 1,
		},
		{
			name:  "multiple ranges",
			text:  "Jan 2018 - Dec 2019 then Feb 2020 - Present",
			count: 2,
		},
		{
			name:  "year only does not match",
			text:  "2018 - 2019",
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDateRanges(tt.text)
			if len(got) != tt.count {
				t.Errorf("FindDateRanges(%q) = %v, want %d matches", tt.text, got, tt.count)
			}
		})
	}
}

func TestMatchActionVerbs(t *testing.T) {
	text := "Managed a team and increased revenue. Also MANAGED vendors."

	got := MatchActionVerbs(text)

	want := map[string]bool{"managed": true, "increased": true}
	for _, v := range got {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Errorf("MatchActionVerbs missed %v (got %v)", want, got)
	}

	// Distinct verbs only, no duplicates for repeated occurrences.
	seen := map[string]int{}
	for _, v := range got {
		seen[v]++
		if seen[v] > 1 {
			t.Errorf("verb %q returned more than once", v)
		}
	}
}

func TestCheckQuality(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		spans    map[string]Span
		expected types.QualityFlags
	}{
		{
			name:     "clean text",
			text:     "Delivered measurable results across projects",
			expected: types.QualityFlags{},
		},
		{
			name:     "all three issues without spans",
			text:     "I was responsible for leading the team, I am a team player",
			expected: types.QualityFlags{GenericPhrases: true, Pronouns: true, PassiveVoice: true},
		},
		{
			name:     "passive was plus ed",
			text:     "The rollout was delayed twice",
			expected: types.QualityFlags{PassiveVoice: true},
		},
		{
			name:     "by the construction",
			text:     "Approved by the board",
			expected: types.QualityFlags{PassiveVoice: true},
		},
		{
			name:     "generic phrase only",
			text:     "A detail oriented professional",
			expected: types.QualityFlags{GenericPhrases: true},
		},
		{
			name:     "capitalized My is not flagged",
			text:     "My team delivered on time",
			expected: types.QualityFlags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckQuality(tt.text, tt.spans)
			if got != tt.expected {
				t.Errorf("CheckQuality(%q) = %+v, want %+v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCheckQualitySectionAwarePronouns(t *testing.T) {
	//                      summary span              experience span
	text := "summary I am a focused engineer experience Shipped the platform"
	spans := map[string]Span{
		"summary":    {Start: 7, End: 31},
		"experience": {Start: 42, End: len(text)},
	}

	got := CheckQuality(text, spans)
	if got.Pronouns {
		t.Error("pronouns inside the summary span must not be flagged")
	}

	// Same pronoun inside the experience span flags.
	text2 := "summary focused engineer experience I shipped the platform"
	spans2 := map[string]Span{
		"summary":    {Start: 7, End: 24},
		"experience": {Start: 35, End: len(text2)},
	}
	got2 := CheckQuality(text2, spans2)
	if !got2.Pronouns {
		t.Error("pronouns inside the experience span must be flagged")
	}
}
