package types

// AnalyzeResumeInput represents the input for scoring a resume against a job title
type AnalyzeResumeInput struct {
	ResumeText string `json:"resumeText"`
	JobTitle   string `json:"jobTitle"`
}

// ScoreBreakdown holds the capped sub-scores that make up the content score,
// plus the title match component. Sub-score caps: sections 40, metrics 15,
// action verbs 20, quality 15, dates 10.
type ScoreBreakdown struct {
	ContentScore       int     `json:"content_score"`
	Sections           int     `json:"sections"`
	Metrics            int     `json:"metrics"`
	ActionVerbs        int     `json:"action_verbs"`
	Quality            int     `json:"quality"`
	Dates              int     `json:"dates"`
	TitleMatchScore    float64 `json:"title_match_score"` // 0-100, one decimal place
	TitleMatchStrength string  `json:"title_match_strength"`
}

// QualityFlags records detected stylistic weaknesses
type QualityFlags struct {
	GenericPhrases bool `json:"generic_phrases"`
	Pronouns       bool `json:"pronouns"`
	PassiveVoice   bool `json:"passive_voice"`
}

// Any reports whether at least one flag is set
func (q QualityFlags) Any() bool {
	return q.GenericPhrases || q.Pronouns || q.PassiveVoice
}

// Count returns the number of set flags
func (q QualityFlags) Count() int {
	n := 0
	for _, b := range []bool{q.GenericPhrases, q.Pronouns, q.PassiveVoice} {
		if b {
			n++
		}
	}
	return n
}

// Feedback carries the structured findings behind the score
type Feedback struct {
	MissingSections  []string     `json:"missing_sections"`
	MetricsFound     []string     `json:"metrics_found"`
	ActionVerbsFound []string     `json:"action_verbs_found"`
	DateRangesFound  []string     `json:"date_ranges_found"`
	QualityIssues    QualityFlags `json:"quality_issues"`
	Suggestions      []string     `json:"suggestions"`
	AIOpinion        string       `json:"ai_opinion,omitempty"`
	AIOpinionError   string       `json:"ai_opinion_error,omitempty"`
}

// AnalysisResult is the terminal output of a single analysis call
type AnalysisResult struct {
	Status         string         `json:"status"` // "success" or "error"
	Error          string         `json:"error,omitempty"`
	Score          int            `json:"score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Feedback       Feedback       `json:"feedback"`
}

// TitleMatch is a title-to-resume match score with a categorical strength label
type TitleMatch struct {
	Score    float64 `json:"score"` // 0.0 - 1.0
	Strength string  `json:"strength"`
}

// StandardizedTitle is a canonical job title as held by the title store
type StandardizedTitle struct {
	OriginalCode      string `json:"original_code,omitempty"`
	OriginalTitle     string `json:"original_title"`
	StandardizedTitle string `json:"standardised_title"`
}
