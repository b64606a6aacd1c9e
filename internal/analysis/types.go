// Package analysis talks to the remote resume-analysis service and turns its
// sparse responses into fully populated display models.
package analysis

// Kind selects which guided flow a request or result belongs to.
type Kind int

const (
	// KindReview is the standalone resume review flow.
	KindReview Kind = iota
	// KindMatcher is the resume vs job-description matching flow.
	KindMatcher
)

func (k Kind) String() string {
	switch k {
	case KindReview:
		return "review"
	case KindMatcher:
		return "matcher"
	default:
		return "unknown"
	}
}

// DetailedImprovement is one targeted rewrite suggestion. Only Section and
// Item are guaranteed by the service; the rest may be empty.
type DetailedImprovement struct {
	Section       string `json:"section"`
	Item          string `json:"item"`
	Location      string `json:"location,omitempty"`
	OriginalText  string `json:"original_text,omitempty"`
	SuggestedText string `json:"suggested_text,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// RawResult is the wire shape of both endpoints merged: the analyze endpoint
// populates the ATS fields, the match endpoint the keyword fields. Every
// field is optional; Adapt fills the gaps.
type RawResult struct {
	// Analyze endpoint fields.
	ATSScore             int                   `json:"ats_score"`
	Summary              string                `json:"summary"`
	Improvements         []string              `json:"improvements"`
	DetailedImprovements []DetailedImprovement `json:"detailed_improvements"`
	Strengths            []string              `json:"strengths"`
	GithubFeedback       string                `json:"github_feedback"`
	DomainMismatch       bool                  `json:"domain_mismatch"`
	DomainMismatchAdvice string                `json:"domain_mismatch_advice"`
	ContentQuality       int                   `json:"content_quality"`
	ATSStructure         int                   `json:"ats_structure"`
	JobOptimization      int                   `json:"job_optimization"`
	WritingQuality       int                   `json:"writing_quality"`
	ApplicationReady     int                   `json:"application_ready"`

	// Match endpoint fields.
	MatchScore       int      `json:"match_score"`
	PotentialScore   int      `json:"potential_score"`
	MissingKeywords  []string `json:"missing_keywords"`
	MatchingKeywords []string `json:"matching_keywords"`
	Recommendation   string   `json:"recommendation"`
}

// ScoreBreakdown holds the five per-dimension sub-scores (0-10 scale).
type ScoreBreakdown struct {
	ContentQuality   int
	ATSStructure     int
	JobOptimization  int
	WritingQuality   int
	ApplicationReady int
}

// DisplayResult is the fully defaulted, render-ready view of a RawResult.
// No field is ever absent or nil.
type DisplayResult struct {
	Kind           Kind
	Score          int
	PotentialScore int
	StatusLabel    string
	Summary        string
	Recommendation string

	Improvements         []string
	DetailedImprovements []DetailedImprovement
	Strengths            []string
	MissingKeywords      []string
	MatchingKeywords     []string

	GithubFeedback       string
	DomainMismatch       bool
	DomainMismatchAdvice string

	Breakdown ScoreBreakdown
}
