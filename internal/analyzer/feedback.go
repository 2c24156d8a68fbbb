package analyzer

import "atsblitz/internal/types"

// BuildFeedback turns extractor outputs and the content score into the
// structured feedback object, minus the AI opinion which the orchestrator
// attaches separately.
func BuildFeedback(scores ContentScores, sections SectionMap, metrics, verbs, dates []string, quality types.QualityFlags) types.Feedback {
	return types.Feedback{
		MissingSections:  sections.MissingSections(),
		MetricsFound:     metrics,
		ActionVerbsFound: verbs,
		DateRangesFound:  dates,
		QualityIssues:    quality,
		Suggestions:      buildSuggestions(scores, sections, metrics, verbs, dates, quality),
	}
}

// buildSuggestions assembles the prioritized suggestion list. Tiers, in
// order: a single positive message for strong resumes, critical section
// gaps, metric and verb gaps, quality fixes, then date formatting. The
// result is deduplicated while preserving order.
func buildSuggestions(scores ContentScores, sections SectionMap, metrics, verbs, dates []string, quality types.QualityFlags) []string {
	var suggestions []string

	// Positive tier: only the highest qualifying message is emitted.
	switch {
	case scores.Total >= 90 &&
		sections.Present["experience"] && sections.Present["education"] &&
		len(metrics) >= 5 && len(verbs) >= 8:
		suggestions = append(suggestions, "Outstanding! Your resume exceeds ATS optimization standards.")
	case scores.Total >= 80:
		suggestions = append(suggestions, "Excellent resume! It meets most ATS optimization criteria.")
	case scores.Total >= 75:
		suggestions = append(suggestions, "Great job! Your resume performs well in ATS systems.")
	}

	if !sections.Present["experience"] {
		suggestions = append(suggestions, "CRITICAL: Add a Work Experience section with position details")
	}
	if !sections.Present["education"] {
		suggestions = append(suggestions, "CRITICAL: Include your Education background")
	}
	if !sections.Present["skills"] {
		suggestions = append(suggestions, "IMPORTANT: Add a Skills section with relevant competencies")
	}

	if len(metrics) < 3 {
		suggestions = append(suggestions, "Boost impact: Add 2-3 quantifiable achievements (e.g., 'Increased sales by 30%')")
	}

	if len(verbs) < 5 {
		suggestions = append(suggestions, "Use more action verbs like 'developed', 'optimised', or 'managed' to describe achievements")
	}

	if quality.GenericPhrases {
		suggestions = append(suggestions, "Replace generic phrases like 'team player' with specific examples")
	}
	if quality.Pronouns {
		suggestions = append(suggestions, "Reduce use of pronouns (I/my) in work experience - use action verbs instead")
	}
	if quality.PassiveVoice {
		suggestions = append(suggestions, "Convert passive voice to active (e.g., 'was responsible for' -> 'managed')")
	}

	if len(dates) < 2 && sections.Present["experience"] {
		suggestions = append(suggestions, "Include date ranges for all positions (e.g., 'May 2020 - Present')")
	}

	return dedupe(suggestions)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
