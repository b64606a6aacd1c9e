package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestAdaptEmptyReviewResponse(t *testing.T) {
	got := Adapt(&RawResult{}, KindReview)

	want := DisplayResult{
		Kind:                 KindReview,
		Score:                0,
		PotentialScore:       15,
		StatusLabel:          "Needs Improvement",
		Summary:              "Analysis complete.",
		Recommendation:       "No recommendation.",
		GithubFeedback:       "No GitHub data available.",
		Improvements:         []string{},
		DetailedImprovements: []DetailedImprovement{},
		Strengths:            []string{},
		MissingKeywords:      []string{},
		MatchingKeywords:     []string{},
		Breakdown: ScoreBreakdown{
			ContentQuality:   8,
			ATSStructure:     8,
			JobOptimization:  7,
			WritingQuality:   8,
			ApplicationReady: 7,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Adapt mismatch (-want +got):\n%s", diff)
	}
}

func TestAdaptNilRaw(t *testing.T) {
	got := Adapt(nil, KindMatcher)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, "Low Match", got.StatusLabel)
	assert.NotNil(t, got.MissingKeywords)
	assert.NotNil(t, got.Improvements)
	assert.Equal(t, "No recommendation.", got.Recommendation)
}

func TestAdaptPotentialScoreClamped(t *testing.T) {
	got := Adapt(&RawResult{ATSScore: 92}, KindReview)
	assert.Equal(t, 92, got.Score)
	assert.Equal(t, 100, got.PotentialScore, "potential never exceeds 100")

	got = Adapt(&RawResult{ATSScore: 70}, KindReview)
	assert.Equal(t, 85, got.PotentialScore)
}

func TestAdaptMatcherUsesOwnPotential(t *testing.T) {
	got := Adapt(&RawResult{MatchScore: 61, PotentialScore: 88}, KindMatcher)
	assert.Equal(t, 61, got.Score)
	assert.Equal(t, 88, got.PotentialScore)
}

func TestAdaptPreservesPopulatedFields(t *testing.T) {
	raw := &RawResult{
		ATSScore:       74,
		Summary:        "Strong backend resume.",
		Improvements:   []string{"Quantify impact"},
		Strengths:      []string{"Clear structure"},
		GithubFeedback: "Active contributor.",
		ContentQuality: 9,
		DetailedImprovements: []DetailedImprovement{
			{Section: "Experience", Item: "Add metrics", Reason: "Recruiters scan for numbers"},
		},
	}
	got := Adapt(raw, KindReview)

	assert.Equal(t, "Strong backend resume.", got.Summary)
	assert.Equal(t, []string{"Quantify impact"}, got.Improvements)
	assert.Equal(t, []string{"Clear structure"}, got.Strengths)
	assert.Equal(t, "Active contributor.", got.GithubFeedback)
	assert.Equal(t, 9, got.Breakdown.ContentQuality)
	assert.Equal(t, 8, got.Breakdown.ATSStructure, "unset dimensions keep neutral defaults")
	assert.Equal(t, "Add metrics", got.DetailedImprovements[0].Item)
}

func TestReviewStatusLabels(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Needs Improvement"},
		{59, "Needs Improvement"},
		{60, "Good"},
		{79, "Good"},
		{80, "Excellent"},
		{100, "Excellent"},
	}
	for _, tc := range cases {
		got := Adapt(&RawResult{ATSScore: tc.score}, KindReview)
		assert.Equal(t, tc.want, got.StatusLabel, "score %d", tc.score)
	}
}

func TestMatchStatusLabels(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Low Match"},
		{49, "Low Match"},
		{50, "Moderate Match"},
		{74, "Moderate Match"},
		{75, "High Match"},
		{100, "High Match"},
	}
	for _, tc := range cases {
		got := Adapt(&RawResult{MatchScore: tc.score}, KindMatcher)
		assert.Equal(t, tc.want, got.StatusLabel, "score %d", tc.score)
	}
}
