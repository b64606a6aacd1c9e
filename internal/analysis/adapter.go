package analysis

// Canned text used when the service leaves a narrative field empty.
const (
	defaultSummary        = "Analysis complete."
	defaultRecommendation = "No recommendation."
	defaultGithubFeedback = "No GitHub data available."
)

// potentialBonus is added to the review score to estimate the achievable
// score after applying the suggested improvements.
const potentialBonus = 15

// Adapt converts a raw service response into a DisplayResult. It is total:
// raw may be nil or arbitrarily sparse, and every output field gets a usable
// value. A sub-score of 0 is treated as absent, matching the service's own
// convention of omitting dimensions it did not evaluate.
func Adapt(raw *RawResult, kind Kind) DisplayResult {
	if raw == nil {
		raw = &RawResult{}
	}

	out := DisplayResult{
		Kind:                 kind,
		Summary:              orDefault(raw.Summary, defaultSummary),
		Recommendation:       orDefault(raw.Recommendation, defaultRecommendation),
		GithubFeedback:       orDefault(raw.GithubFeedback, defaultGithubFeedback),
		Improvements:         orEmpty(raw.Improvements),
		DetailedImprovements: orEmptyDetailed(raw.DetailedImprovements),
		Strengths:            orEmpty(raw.Strengths),
		MissingKeywords:      orEmpty(raw.MissingKeywords),
		MatchingKeywords:     orEmpty(raw.MatchingKeywords),
		DomainMismatch:       raw.DomainMismatch,
		DomainMismatchAdvice: raw.DomainMismatchAdvice,
		Breakdown: ScoreBreakdown{
			ContentQuality:   orScore(raw.ContentQuality, 8),
			ATSStructure:     orScore(raw.ATSStructure, 8),
			JobOptimization:  orScore(raw.JobOptimization, 7),
			WritingQuality:   orScore(raw.WritingQuality, 8),
			ApplicationReady: orScore(raw.ApplicationReady, 7),
		},
	}

	switch kind {
	case KindMatcher:
		out.Score = raw.MatchScore
		out.PotentialScore = raw.PotentialScore
		out.StatusLabel = matchLabel(out.Score)
	default:
		out.Score = raw.ATSScore
		out.PotentialScore = min(100, out.Score+potentialBonus)
		out.StatusLabel = reviewLabel(out.Score)
	}

	return out
}

// reviewLabel maps an ATS score to its qualitative label.
func reviewLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

// matchLabel maps a match score to its qualitative label.
func matchLabel(score int) string {
	switch {
	case score >= 75:
		return "High Match"
	case score >= 50:
		return "Moderate Match"
	default:
		return "Low Match"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orScore(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func orEmptyDetailed(in []DetailedImprovement) []DetailedImprovement {
	if in == nil {
		return []DetailedImprovement{}
	}
	return in
}
