package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"atsblitz/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter handles text formatting for analysis results
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	if result.Status == "error" {
		output.WriteString("=== ANALYSIS FAILED ===\n\n")
		output.WriteString(result.Error)
		output.WriteString("\n\n")
		writeSuggestionsText(&output, result.Feedback.Suggestions)
		return output.String(), nil
	}

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n\n", result.Score))

	bd := result.ScoreBreakdown
	output.WriteString("=== SCORE BREAKDOWN ===\n")
	output.WriteString(fmt.Sprintf("Content Score: %d/100\n", bd.ContentScore))
	output.WriteString(fmt.Sprintf("  Sections:     %d/40\n", bd.Sections))
	output.WriteString(fmt.Sprintf("  Metrics:      %d/15\n", bd.Metrics))
	output.WriteString(fmt.Sprintf("  Action Verbs: %d/20\n", bd.ActionVerbs))
	output.WriteString(fmt.Sprintf("  Quality:      %d/15\n", bd.Quality))
	output.WriteString(fmt.Sprintf("  Dates:        %d/10\n", bd.Dates))
	output.WriteString(fmt.Sprintf("Title Match: %.1f/100 (%s)\n\n", bd.TitleMatchScore, bd.TitleMatchStrength))

	fb := result.Feedback
	if len(fb.MissingSections) > 0 {
		output.WriteString("Missing Sections:\n")
		for _, section := range fb.MissingSections {
			output.WriteString(fmt.Sprintf("- %s\n", section))
		}
		output.WriteString("\n")
	}

	if len(fb.MetricsFound) > 0 {
		output.WriteString(fmt.Sprintf("Quantifiable Achievements: %s\n\n", strings.Join(fb.MetricsFound, ", ")))
	}
	if len(fb.ActionVerbsFound) > 0 {
		output.WriteString(fmt.Sprintf("Action Verbs: %s\n\n", strings.Join(fb.ActionVerbsFound, ", ")))
	}
	if len(fb.DateRangesFound) > 0 {
		output.WriteString(fmt.Sprintf("Date Ranges: %s\n\n", strings.Join(fb.DateRangesFound, "; ")))
	}

	writeSuggestionsText(&output, fb.Suggestions)

	if fb.AIOpinion != "" {
		output.WriteString("=== EXPERT OPINION ===\n\n")
		output.WriteString(fb.AIOpinion)
		output.WriteString("\n")
	}
	if fb.AIOpinionError != "" {
		output.WriteString(fmt.Sprintf("Expert opinion unavailable: %s\n", fb.AIOpinionError))
	}

	return output.String(), nil
}

func writeSuggestionsText(output *strings.Builder, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	output.WriteString("=== SUGGESTIONS ===\n")
	for _, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("- %s\n", suggestion))
	}
	output.WriteString("\n")
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	if result.Status == "error" {
		output.WriteString("# Analysis Failed\n\n")
		output.WriteString(result.Error)
		output.WriteString("\n\n")
		writeSuggestionsMarkdown(&output, result.Feedback.Suggestions)
		return output.String(), nil
	}

	output.WriteString("# Resume Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.Score))

	bd := result.ScoreBreakdown
	output.WriteString("## Score Breakdown\n\n")
	output.WriteString("| Component | Score |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Sections | %d/40 |\n", bd.Sections))
	output.WriteString(fmt.Sprintf("| Metrics | %d/15 |\n", bd.Metrics))
	output.WriteString(fmt.Sprintf("| Action Verbs | %d/20 |\n", bd.ActionVerbs))
	output.WriteString(fmt.Sprintf("| Quality | %d/15 |\n", bd.Quality))
	output.WriteString(fmt.Sprintf("| Dates | %d/10 |\n", bd.Dates))
	output.WriteString(fmt.Sprintf("| **Content Total** | **%d/100** |\n\n", bd.ContentScore))
	output.WriteString(fmt.Sprintf("**Title Match:** %.1f/100 (%s)\n\n", bd.TitleMatchScore, bd.TitleMatchStrength))

	fb := result.Feedback
	if len(fb.MissingSections) > 0 {
		output.WriteString("## Missing Sections\n\n")
		for _, section := range fb.MissingSections {
			output.WriteString(fmt.Sprintf("- %s\n", section))
		}
		output.WriteString("\n")
	}

	writeSuggestionsMarkdown(&output, fb.Suggestions)

	if fb.AIOpinion != "" {
		output.WriteString("## Expert Opinion\n\n")
		output.WriteString(fb.AIOpinion)
		output.WriteString("\n")
	}
	if fb.AIOpinionError != "" {
		output.WriteString(fmt.Sprintf("\n*Expert opinion unavailable: %s*\n", fb.AIOpinionError))
	}

	return output.String(), nil
}

func writeSuggestionsMarkdown(output *strings.Builder, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	output.WriteString("## Suggestions\n\n")
	for _, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("- %s\n", suggestion))
	}
	output.WriteString("\n")
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

// GlobalRegistry is the default formatter registry instance
var GlobalRegistry = NewFormatterRegistry()
