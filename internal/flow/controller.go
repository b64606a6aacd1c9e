package flow

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"fitforworks/internal/analysis"
	"fitforworks/internal/document"
	"fitforworks/internal/logging"
)

// Step is the position within a guided flow.
type Step int

const (
	StepUpload Step = iota + 1
	StepContext
	StepProcessing
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepContext:
		return "context"
	case StepProcessing:
		return "processing"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// ErrJobDescriptionTooShort rejects a matcher submission below the word
// threshold. Nothing is sent and no state is lost.
var ErrJobDescriptionTooShort = fmt.Errorf(
	"job description needs at least %d words", MinJobDescriptionWords)

// ErrWrongStep reports an operation invoked outside the step it belongs to.
var ErrWrongStep = errors.New("operation not valid in current step")

// Request is the one-shot effect token for the processing step. It snapshots
// everything needed to issue the analysis call, plus the generation used to
// fence stale completions.
type Request struct {
	Kind           analysis.Kind
	Key            string
	Doc            *document.Ref
	Review         ReviewContext
	JobDescription string

	owner      *Controller
	generation int
}

// Controller drives one flow invocation through upload, context, processing,
// and results. One instance exists per active flow view; it is discarded
// when the user leaves the view.
type Controller struct {
	mu   sync.Mutex
	kind analysis.Kind

	step    Step
	doc     *document.Ref
	review  ReviewContext
	page    WizardPage
	matcher MatcherContext

	raw       *analysis.RawResult
	lastError string

	// generation increments every time the instance enters or leaves the
	// processing step, so a completion from an abandoned request can never
	// touch the current state.
	generation  int
	effectKey   string
	effectFired bool
}

// New creates a flow instance at the upload step.
func New(kind analysis.Kind) *Controller {
	return &Controller{kind: kind, step: StepUpload}
}

// Kind returns the flow variant.
func (c *Controller) Kind() analysis.Kind { return c.kind }

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Document returns the accepted resume, if any.
func (c *Controller) Document() *document.Ref {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// AcceptDocument stores the uploaded resume and advances to the context
// step. Only valid at the upload step.
func (c *Controller) AcceptDocument(ref *document.Ref) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepUpload {
		return ErrWrongStep
	}
	c.doc = ref
	c.step = StepContext
	c.page = PageCategory
	logging.Flow("%s: accepted %s (%d words), entering context step", c.kind, ref.Name, ref.Words)
	return nil
}

// Page returns the active wizard page (review flow only).
func (c *Controller) Page() WizardPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// ReviewSelections returns the wizard selections made so far.
func (c *Controller) ReviewSelections() ReviewContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.review
}

// SelectCategory records the job domain and shows the role page.
func (c *Controller) SelectCategory(category string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kind != analysis.KindReview || c.step != StepContext || c.page != PageCategory {
		return ErrWrongStep
	}
	c.review.Category = category
	c.page = PageRole
	return nil
}

// SelectRole records the role and shows the level page.
func (c *Controller) SelectRole(role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kind != analysis.KindReview || c.step != StepContext || c.page != PageRole {
		return ErrWrongStep
	}
	c.review.Role = role
	c.page = PageLevel
	return nil
}

// SelectLevel records the experience level. The wizard is complete, so the
// flow enters the processing step.
func (c *Controller) SelectLevel(level string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kind != analysis.KindReview || c.step != StepContext || c.page != PageLevel {
		return ErrWrongStep
	}
	c.review.Level = level
	c.enterProcessingLocked()
	return nil
}

// WizardBack steps to the previous wizard page, or back to the upload step
// from the first page. The uploaded document is kept.
func (c *Controller) WizardBack() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepContext {
		return
	}
	if c.kind == analysis.KindReview && c.page > PageCategory {
		c.page--
		return
	}
	c.step = StepUpload
}

// SetJobDescription updates the matcher's job description text.
func (c *Controller) SetJobDescription(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kind != analysis.KindMatcher || c.step != StepContext {
		return ErrWrongStep
	}
	c.matcher.JobDescription = text
	return nil
}

// JobDescription returns the matcher's current job description text.
func (c *Controller) JobDescription() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matcher.JobDescription
}

// JobWordCount returns the job description's word count.
func (c *Controller) JobWordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WordCount(c.matcher.JobDescription)
}

// CanSubmitJobDescription reports whether the description meets the word
// threshold.
func (c *Controller) CanSubmitJobDescription() bool {
	return c.JobWordCount() >= MinJobDescriptionWords
}

// SubmitJobDescription validates the description and enters the processing
// step. Below the threshold it returns ErrJobDescriptionTooShort and changes
// nothing.
func (c *Controller) SubmitJobDescription() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kind != analysis.KindMatcher || c.step != StepContext {
		return ErrWrongStep
	}
	if WordCount(c.matcher.JobDescription) < MinJobDescriptionWords {
		return ErrJobDescriptionTooShort
	}
	c.enterProcessingLocked()
	return nil
}

// BeginProcessing hands out the processing step's one-shot effect. The first
// call after entering the step returns the request to issue; every later
// call (a re-render, a repeated tick) returns nil until the step is entered
// again.
func (c *Controller) BeginProcessing() (*Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepProcessing || c.effectFired {
		return nil, false
	}
	c.effectFired = true
	return &Request{
		Kind:           c.kind,
		Key:            c.effectKey,
		Doc:            c.doc,
		Review:         c.review,
		JobDescription: c.matcher.JobDescription,
		owner:          c,
		generation:     c.generation,
	}, true
}

// CompleteProcessing applies the outcome of req. A completion issued by a
// different instance, or whose generation no longer matches (the flow was
// restarted or already resolved), is dropped. On success the flow shows
// results; on failure it surfaces the error and falls back to the upload
// step, discarding file and context.
func (c *Controller) CompleteProcessing(req *Request, raw *analysis.RawResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req == nil || req.owner != c || c.step != StepProcessing || req.generation != c.generation {
		logging.FlowDebug("%s: dropping stale completion", c.kind)
		return false
	}

	if err != nil {
		logging.Flow("%s: analysis failed, resetting to upload: %v", c.kind, err)
		c.lastError = "Analysis failed. Please try again."
		c.resetLocked()
		return true
	}

	c.raw = raw
	c.step = StepResults
	c.generation++
	logging.Flow("%s: analysis complete, showing results", c.kind)
	return true
}

// Result adapts the stored raw response. ok is false outside the results
// step.
func (c *Controller) Result() (analysis.DisplayResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepResults {
		return analysis.DisplayResult{}, false
	}
	return analysis.Adapt(c.raw, c.kind), true
}

// Restart discards the instance's state and returns to the upload step.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = ""
	c.resetLocked()
}

// LastError returns the pending user-visible error message, if any.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// ClearError acknowledges the pending error message.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = ""
}

// enterProcessingLocked arms the one-shot analysis effect. Callers hold c.mu
// and have a document and complete context in place.
func (c *Controller) enterProcessingLocked() {
	c.step = StepProcessing
	c.generation++
	c.effectFired = false

	switch c.kind {
	case analysis.KindMatcher:
		jd := sha256.Sum256([]byte(c.matcher.JobDescription))
		c.effectKey = analysis.EffectKey(c.kind, c.doc.Digest, hex.EncodeToString(jd[:8]))
	default:
		c.effectKey = analysis.EffectKey(c.kind, c.doc.Digest, c.review.Category, c.review.Role, c.review.Level)
	}
	logging.Flow("%s: entering processing step key=%s", c.kind, c.effectKey)
}

// resetLocked returns the instance to a pristine upload step. Callers hold
// c.mu.
func (c *Controller) resetLocked() {
	c.step = StepUpload
	c.doc = nil
	c.review = ReviewContext{}
	c.page = PageCategory
	c.matcher = MatcherContext{}
	c.raw = nil
	c.generation++
	c.effectKey = ""
	c.effectFired = false
}
