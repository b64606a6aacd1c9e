package flow

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitforworks/internal/analysis"
	"fitforworks/internal/document"
)

func testRef(digest string) *document.Ref {
	return &document.Ref{
		Path:   "/tmp/resume.txt",
		Name:   "resume.txt",
		Size:   42,
		Digest: digest,
		Text:   "Jane Doe Go engineer",
		Words:  4,
	}
}

// advanceToProcessing walks a review flow through upload and the full
// wizard.
func advanceToProcessing(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.AcceptDocument(testRef("digest-a")))
	require.NoError(t, c.SelectCategory("Software Engineering"))
	require.NoError(t, c.SelectRole("Backend Engineering"))
	require.NoError(t, c.SelectLevel("Senior"))
	require.Equal(t, StepProcessing, c.Step())
}

func TestReviewHappyPath(t *testing.T) {
	c := New(analysis.KindReview)
	require.Equal(t, StepUpload, c.Step())

	advanceToProcessing(t, c)

	req, fire := c.BeginProcessing()
	require.True(t, fire)
	assert.Equal(t, analysis.KindReview, req.Kind)
	assert.Equal(t, "digest-a", req.Doc.Digest)
	assert.Equal(t, ReviewContext{
		Category: "Software Engineering",
		Role:     "Backend Engineering",
		Level:    "Senior",
	}, req.Review)

	applied := c.CompleteProcessing(req, &analysis.RawResult{ATSScore: 77}, nil)
	require.True(t, applied)
	require.Equal(t, StepResults, c.Step())

	result, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, 77, result.Score)
	assert.Equal(t, "Good", result.StatusLabel)
}

func TestProcessingEffectFiresOnce(t *testing.T) {
	c := New(analysis.KindReview)
	advanceToProcessing(t, c)

	_, fire := c.BeginProcessing()
	require.True(t, fire)

	// Re-renders while still processing must not issue a second request.
	for i := 0; i < 3; i++ {
		req, fire := c.BeginProcessing()
		assert.False(t, fire)
		assert.Nil(t, req)
	}
}

func TestWizardBack(t *testing.T) {
	c := New(analysis.KindReview)
	require.NoError(t, c.AcceptDocument(testRef("d")))
	require.NoError(t, c.SelectCategory("Design & Creative"))
	require.NoError(t, c.SelectRole("Product Designer"))
	require.Equal(t, PageLevel, c.Page())

	c.WizardBack()
	assert.Equal(t, PageRole, c.Page())
	c.WizardBack()
	assert.Equal(t, PageCategory, c.Page())

	// Back from the first page leaves the wizard entirely.
	c.WizardBack()
	assert.Equal(t, StepUpload, c.Step())
	assert.NotNil(t, c.Document(), "document survives backing out of the wizard")
}

func TestWizardRejectsOutOfOrderSelections(t *testing.T) {
	c := New(analysis.KindReview)

	assert.ErrorIs(t, c.SelectCategory("Software Engineering"), ErrWrongStep)

	require.NoError(t, c.AcceptDocument(testRef("d")))
	assert.ErrorIs(t, c.SelectRole("Backend Engineering"), ErrWrongStep)
	assert.ErrorIs(t, c.SelectLevel("Senior"), ErrWrongStep)
}

func TestMatcherWordGate(t *testing.T) {
	c := New(analysis.KindMatcher)
	require.NoError(t, c.AcceptDocument(testRef("d")))

	// 99 words: below threshold, submission rejected without state change.
	require.NoError(t, c.SetJobDescription(strings.Repeat("word ", 99)))
	assert.Equal(t, 99, c.JobWordCount())
	assert.False(t, c.CanSubmitJobDescription())
	assert.ErrorIs(t, c.SubmitJobDescription(), ErrJobDescriptionTooShort)
	assert.Equal(t, StepContext, c.Step())

	// One more word crosses the threshold.
	require.NoError(t, c.SetJobDescription(strings.Repeat("word ", 100)))
	assert.Equal(t, 100, c.JobWordCount())
	assert.True(t, c.CanSubmitJobDescription())
	require.NoError(t, c.SubmitJobDescription())
	assert.Equal(t, StepProcessing, c.Step())
}

func TestWordCountIgnoresBlankRuns(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t  "))
	assert.Equal(t, 3, WordCount("  one\ttwo \n three  "))
}

func TestFailureResetsToUpload(t *testing.T) {
	c := New(analysis.KindReview)
	advanceToProcessing(t, c)

	req, fire := c.BeginProcessing()
	require.True(t, fire)

	applied := c.CompleteProcessing(req, nil, errors.New("connection refused"))
	require.True(t, applied)

	assert.Equal(t, StepUpload, c.Step())
	assert.Nil(t, c.Document(), "file discarded on failure")
	assert.Equal(t, ReviewContext{}, c.ReviewSelections(), "context discarded on failure")
	assert.NotEmpty(t, c.LastError())

	c.ClearError()
	assert.Empty(t, c.LastError())
}

func TestStaleCompletionDropped(t *testing.T) {
	c := New(analysis.KindReview)
	advanceToProcessing(t, c)

	staleReq, fire := c.BeginProcessing()
	require.True(t, fire)

	// User abandons the run before the response lands.
	c.Restart()
	require.Equal(t, StepUpload, c.Step())

	applied := c.CompleteProcessing(staleReq, &analysis.RawResult{ATSScore: 90}, nil)
	assert.False(t, applied, "completion for an abandoned run is ignored")
	assert.Equal(t, StepUpload, c.Step())
	_, ok := c.Result()
	assert.False(t, ok)
}

func TestStaleCompletionAfterNewRunDropped(t *testing.T) {
	c := New(analysis.KindReview)
	advanceToProcessing(t, c)
	staleReq, _ := c.BeginProcessing()

	// Restart and run the whole flow again.
	c.Restart()
	advanceToProcessing(t, c)
	freshReq, fire := c.BeginProcessing()
	require.True(t, fire)

	assert.False(t, c.CompleteProcessing(staleReq, &analysis.RawResult{ATSScore: 10}, nil),
		"first run's response cannot complete the second run")

	require.True(t, c.CompleteProcessing(freshReq, &analysis.RawResult{ATSScore: 85}, nil))
	result, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, 85, result.Score)
}

func TestCompletionFromAnotherInstanceDropped(t *testing.T) {
	old := New(analysis.KindReview)
	advanceToProcessing(t, old)
	oldReq, fire := old.BeginProcessing()
	require.True(t, fire)

	// The user leaves the view and comes back: a fresh instance, also on
	// its first processing entry, with a different document.
	fresh := New(analysis.KindReview)
	require.NoError(t, fresh.AcceptDocument(testRef("digest-b")))
	require.NoError(t, fresh.SelectCategory("Software Engineering"))
	require.NoError(t, fresh.SelectRole("Backend Engineering"))
	require.NoError(t, fresh.SelectLevel("Senior"))
	freshReq, fire := fresh.BeginProcessing()
	require.True(t, fire)

	applied := fresh.CompleteProcessing(oldReq, &analysis.RawResult{ATSScore: 11}, nil)
	assert.False(t, applied, "another instance's response cannot complete this run")
	assert.Equal(t, StepProcessing, fresh.Step())

	require.True(t, fresh.CompleteProcessing(freshReq, &analysis.RawResult{ATSScore: 91}, nil))
	result, ok := fresh.Result()
	require.True(t, ok)
	assert.Equal(t, 91, result.Score)
}

func TestRestartFromResults(t *testing.T) {
	c := New(analysis.KindReview)
	advanceToProcessing(t, c)
	req, _ := c.BeginProcessing()
	require.True(t, c.CompleteProcessing(req, &analysis.RawResult{ATSScore: 88}, nil))

	c.Restart()
	assert.Equal(t, StepUpload, c.Step())
	assert.Nil(t, c.Document())
	_, ok := c.Result()
	assert.False(t, ok)
}

func TestMatcherEffectKeyTracksJobDescription(t *testing.T) {
	jd := strings.Repeat("requirements ", 120)

	run := func(jdText string) string {
		c := New(analysis.KindMatcher)
		require.NoError(t, c.AcceptDocument(testRef("same-digest")))
		require.NoError(t, c.SetJobDescription(jdText))
		require.NoError(t, c.SubmitJobDescription())
		req, fire := c.BeginProcessing()
		require.True(t, fire)
		return req.Key
	}

	assert.Equal(t, run(jd), run(jd), "same document and JD share a key")
	assert.NotEqual(t, run(jd), run(jd+" extra"), "different JD gets a new key")
}

func TestRolesForUnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, RolesFor("Software Engineering"), RolesFor("Underwater Basket Weaving"))
	assert.Len(t, Levels(), 5)
	assert.Len(t, Categories(), 5)
}
