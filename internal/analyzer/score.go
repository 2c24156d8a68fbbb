package analyzer

import (
	"math"
	"strings"

	"atsblitz/internal/types"
)

// Sub-score caps for the content score.
const (
	maxSectionScore = 40
	maxMetricScore  = 15
	maxVerbScore    = 20
	maxQualityScore = 15
	maxDateScore    = 10

	qualityDeduction = 8

	contentWeight = 0.7
	titleWeight   = 0.3

	// A title match at or below this threshold halves the blended score.
	titleMatchPenaltyThreshold = 0.6
)

var majorSections = []string{"experience", "education", "skills"}
var minorSections = []string{"contact", "summary", "projects"}

// ContentScores holds the capped sub-scores and their clamped total.
type ContentScores struct {
	Sections int
	Metrics  int
	Verbs    int
	Quality  int
	Dates    int
	Total    int
}

// ScoreContent combines extractor outputs into a 0-100 content score.
// Sections contribute 10 points each for experience/education/skills and 5
// each for contact/summary/projects, capped at 40; metrics 2 per occurrence
// capped at 15;
// verbs 2 per distinct match capped at 20; quality starts at 15 and loses 8
// per flagged issue (floor 0); dates need at least 2 ranges to count, then
// 3 per range capped at 10.
func ScoreContent(sections SectionMap, metrics, verbs, dates []string, quality types.QualityFlags) ContentScores {
	var s ContentScores

	for _, name := range majorSections {
		if sections.Present[name] {
			s.Sections += 10
		}
	}
	for _, name := range minorSections {
		if sections.Present[name] {
			s.Sections += 5
		}
	}
	s.Sections = min(maxSectionScore, s.Sections)

	s.Metrics = min(maxMetricScore, len(metrics)*2)
	s.Verbs = min(maxVerbScore, len(verbs)*2)
	s.Quality = max(0, maxQualityScore-quality.Count()*qualityDeduction)

	if len(dates) >= 2 {
		s.Dates = min(maxDateScore, len(dates)*3)
	}

	s.Total = min(100, max(0, s.Sections+s.Metrics+s.Verbs+s.Quality+s.Dates))
	return s
}

// ScoreTitleMatch computes how well a standardized title matches the resume
// text, on a 0-1 scale. Exact case-insensitive substring match scores 1.0.
// Otherwise a word-overlap ratio is bucketed (>=0.9 -> 1.0, >=0.7 -> 0.9,
// >=0.5 -> 0.7); below that the injected similarity collaborator decides,
// floored at 0.2. An empty standardized title scores 0.4.
func ScoreTitleMatch(resumeText, standardizedKey string, sim Similarity) (float64, error) {
	if standardizedKey == "" {
		return 0.4, nil
	}

	resumeLower := strings.ToLower(resumeText)
	if strings.Contains(resumeLower, standardizedKey) {
		return 1.0, nil
	}

	words := strings.Fields(standardizedKey)
	matched := 0
	for _, w := range words {
		if strings.Contains(resumeLower, w) {
			matched++
		}
	}

	ratio := 0.0
	if len(words) > 0 {
		ratio = float64(matched) / float64(len(words))
	}

	switch {
	case ratio >= 0.9:
		return 1.0, nil
	case ratio >= 0.7:
		return 0.9, nil
	case ratio >= 0.5:
		return 0.7, nil
	}

	score, err := sim.Score(standardizedKey, resumeLower)
	if err != nil {
		return 0, err
	}
	return math.Max(score, 0.2), nil
}

// FinalScore blends content (70%) and title match (30%), halving the result
// when the title match is at or below the penalty threshold, and clamps to
// [0, 100].
func FinalScore(content int, titleMatch float64) int {
	blended := float64(content)*contentWeight + titleMatch*100*titleWeight
	if titleMatch <= titleMatchPenaltyThreshold {
		blended /= 2
	}
	return min(100, max(0, int(math.Round(blended))))
}

// MatchStrength labels a title-match score by fixed thresholds.
func MatchStrength(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.7:
		return "Good"
	case score >= 0.5:
		return "Fair"
	default:
		return "Weak"
	}
}
