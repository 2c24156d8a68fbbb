package analyzer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"atsblitz/internal/errors"
	"atsblitz/internal/types"
)

// OpinionGenerator produces a free-text expert opinion on a resume.
// Implementations are external services; failures must come back as errors,
// never as opinion text.
type OpinionGenerator interface {
	GenerateOpinion(ctx context.Context, resumeText, jobTitle string) (string, error)
}

// TitleStore is the durable standardized-title lookup collaborator. Lookup
// returns nil (and no error) when the title is unknown. RecordObservation
// increments the title's frequency counter; the store promotes titles to
// standardized entries once they have been seen often enough.
type TitleStore interface {
	Lookup(ctx context.Context, title string) (*types.StandardizedTitle, error)
	RecordObservation(ctx context.Context, title string) error
}

// Analyzer sequences the scoring pipeline. External collaborators are
// optional; a nil opinion generator or title store simply disables that
// integration. Every Analyze call is independent and shares no mutable
// state, so a single Analyzer is safe for concurrent use.
type Analyzer struct {
	opinions   OpinionGenerator
	titles     TitleStore
	similarity Similarity
	logger     *errors.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithOpinionGenerator attaches the external opinion collaborator.
func WithOpinionGenerator(og OpinionGenerator) Option {
	return func(a *Analyzer) { a.opinions = og }
}

// WithTitleStore attaches the external standardized-title store.
func WithTitleStore(ts TitleStore) Option {
	return func(a *Analyzer) { a.titles = ts }
}

// WithSimilarity replaces the default lexical similarity fallback.
func WithSimilarity(sim Similarity) Option {
	return func(a *Analyzer) { a.similarity = sim }
}

// New creates an Analyzer.
func New(logger *errors.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		similarity: LexicalSimilarity{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates inputs, runs the full pipeline and returns a structured
// result. It never returns an error: every failure, expected or not, is
// converted into an error-status result.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobTitle string) (result types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("Analysis panicked", "panic", fmt.Sprint(r))
			result = a.errorResult(fmt.Sprintf("Analysis error: %v", r))
		}
	}()

	if strings.TrimSpace(resumeText) == "" {
		return a.errorResult("Invalid resume text")
	}
	if strings.TrimSpace(jobTitle) == "" {
		return a.errorResult("Invalid job title")
	}

	cleanText := NormalizeText(resumeText)
	standardizedKey := a.standardizeWithStore(ctx, jobTitle)

	sections := DetectSections(cleanText)
	metrics := FindMetrics(cleanText)
	verbs := MatchActionVerbs(cleanText)
	quality := CheckQuality(cleanText, sections.Spans)
	dates := FindDateRanges(cleanText)

	scores := ScoreContent(sections, metrics, verbs, dates, quality)
	if scores.Total < 0 || scores.Total > 100 {
		err := errors.NewAnalysisError(errors.ErrCodeAnalysisFailed,
			"Content score out of range", nil).WithContext("score", scores.Total)
		a.logger.LogError(err, "Content analysis produced an invalid score")
		return a.errorResult("Invalid content analysis")
	}

	titleMatch, err := ScoreTitleMatch(cleanText, standardizedKey, a.similarity)
	if err != nil || titleMatch < 0 || titleMatch > 1 || math.IsNaN(titleMatch) {
		matchErr := errors.NewTitleMatchError(errors.ErrCodeTitleMatchFailed,
			"Title match computation failed", err).WithContext("job_title", jobTitle)
		a.logger.LogError(matchErr, "Title match failed")
		return a.errorResult("Invalid title match calculation")
	}

	feedback := BuildFeedback(scores, sections, metrics, verbs, dates, quality)
	a.attachOpinion(ctx, &feedback, resumeText, jobTitle)

	return types.AnalysisResult{
		Status: "success",
		Score:  FinalScore(scores.Total, titleMatch),
		ScoreBreakdown: types.ScoreBreakdown{
			ContentScore:       scores.Total,
			Sections:           scores.Sections,
			Metrics:            scores.Metrics,
			ActionVerbs:        scores.Verbs,
			Quality:            scores.Quality,
			Dates:              scores.Dates,
			TitleMatchScore:    math.Round(titleMatch*1000) / 10,
			TitleMatchStrength: MatchStrength(titleMatch),
		},
		Feedback: feedback,
	}
}

// standardizeWithStore resolves the job title to its canonical lowercase
// form, preferring a known entry from the title store. Unknown titles are
// recorded so the store can promote recurring ones. Store failures are
// logged and degrade to local standardization; they never fail the analysis.
func (a *Analyzer) standardizeWithStore(ctx context.Context, jobTitle string) string {
	key := StandardizeTitleKey(jobTitle)
	if a.titles == nil || key == "" {
		return key
	}

	known, err := a.titles.Lookup(ctx, key)
	if err != nil {
		storeErr := errors.NewExternalError(errors.ErrCodeStoreFailed,
			"Title store lookup failed", err)
		a.logger.LogError(storeErr, "Falling back to local title standardization")
		return key
	}
	if known != nil {
		return StandardizeTitleKey(known.StandardizedTitle)
	}

	if err := a.titles.RecordObservation(ctx, key); err != nil {
		a.logger.Warn("Failed to record title observation", "title", key, "error", err.Error())
	}
	return key
}

// attachOpinion asks the external opinion generator for prose feedback. The
// original (unstandardized) job title is passed through. A failure is
// surfaced distinctly on the feedback object rather than silently dropped,
// and the analysis result stays a partial success.
func (a *Analyzer) attachOpinion(ctx context.Context, feedback *types.Feedback, resumeText, jobTitle string) {
	if a.opinions == nil {
		return
	}

	opinion, err := a.opinions.GenerateOpinion(ctx, resumeText, jobTitle)
	if err != nil {
		genErr := errors.NewExternalError(errors.ErrCodeAIServiceFailed,
			"Opinion generation failed", err)
		a.logger.LogError(genErr, "Continuing without AI opinion")
		feedback.AIOpinionError = genErr.Message
		return
	}
	feedback.AIOpinion = opinion
}

// errorResult is the uniform error shape: error status, zero score, zeroed
// breakdown and a fallback suggestion.
func (a *Analyzer) errorResult(message string) types.AnalysisResult {
	return types.AnalysisResult{
		Status: "error",
		Error:  message,
		Score:  0,
		ScoreBreakdown: types.ScoreBreakdown{
			TitleMatchStrength: "N/A",
		},
		Feedback: types.Feedback{
			Suggestions: []string{"Analysis failed - please check your input"},
		},
	}
}
