package analyzer

import (
	"strings"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: "",
		},
		{
			name:     "collapses whitespace runs",
			input:    "Managed   a\tteam\n\nof five",
			expected: "Managed a team of five",
		},
		{
			name:     "removes bullet glyphs",
			input:    "• Led projects ◦ Shipped features ▪ Done",
			expected: "Led projects Shipped features Done",
		},
		{
			name:     "removes non-ascii characters",
			input:    "Café résumé text",
			expected: "Caf rsum text",
		},
		{
			name:     "removes page numbers case-insensitively",
			input:    "Experience details Page 1 more text PAGE 2 end",
			expected: "Experience details more text end",
		},
		{
			name:     "removes urls up to whitespace",
			input:    "See https://example.com/me and http://foo.bar profile",
			expected: "See and profile",
		},
		{
			name:     "keeps plain text intact",
			input:    "Increased sales by 30%",
			expected: "Increased sales by 30%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTextSingleSpacedInvariant(t *testing.T) {
	inputs := []string{
		"a  b\n\nc\td",
		"• one • two",
		"text Page 3 https://x.y more",
	}

	for _, input := range inputs {
		got := NormalizeText(input)
		if strings.Contains(got, "  ") {
			t.Errorf("NormalizeText(%q) = %q contains a double space", input, got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("NormalizeText(%q) = %q is not trimmed", input, got)
		}
	}
}
