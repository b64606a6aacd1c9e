package nav

import (
	"sync"

	"fitforworks/internal/logging"
)

// SessionGate is the narrow slice of session state the controller needs to
// gate protected views. *auth.Manager satisfies it.
type SessionGate interface {
	IsAuthenticated() bool
}

// NavigationEntry is one element of the in-process history stack.
type NavigationEntry struct {
	View ViewId `json:"view"`
}

// NavOutcome classifies the result of a Navigate call.
type NavOutcome int

const (
	// NavUnchanged means the target already was the current view.
	NavUnchanged NavOutcome = iota
	// NavChanged means the controller switched to the target view.
	NavChanged
	// NavAuthRequired means the target is protected and the session is not
	// authenticated. The view did not change; the caller should open the
	// sign-in prompt.
	NavAuthRequired
)

func (o NavOutcome) String() string {
	switch o {
	case NavUnchanged:
		return "unchanged"
	case NavChanged:
		return "changed"
	case NavAuthRequired:
		return "auth_required"
	default:
		return "unknown"
	}
}

// Controller tracks the current view and keeps its three replicas in step:
// the top history entry, the route fragment cell, and the persisted state
// file all name the same view after every mutation.
type Controller struct {
	mu       sync.Mutex
	gate     SessionGate
	store    *StateStore
	history  []NavigationEntry
	cursor   int
	fragment string
	current  ViewId
}

// NewController builds a controller over gate and store. Call Start before
// any other method.
func NewController(gate SessionGate, store *StateStore) *Controller {
	return &Controller{gate: gate, store: store, cursor: -1}
}

// ResolveInitialView picks the first view of a run. Precedence: a consumed
// auth redirect forces the dashboard; a valid route fragment wins next; then
// the persisted last view; landing is the fallback.
func (c *Controller) ResolveInitialView(fragment string, forceDashboard bool) ViewId {
	if forceDashboard {
		return ViewDashboard
	}
	if view, ok := ParseView(trimFragment(fragment)); ok {
		return view
	}
	if view, ok := c.store.Load(); ok {
		return view
	}
	return ViewLanding
}

// Start seeds the history with the initial view and performs the first
// triple write. The initial entry replaces rather than pushes, so Back from
// the first screen has nowhere to go.
func (c *Controller) Start(view ViewId) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = []NavigationEntry{{View: view}}
	c.cursor = 0
	c.commitLocked(view)
	logging.Nav("Initial view resolved to %s", view)
}

// Navigate switches to target. Protected targets require an authenticated
// session; navigating to the current view is a no-op.
func (c *Controller) Navigate(target ViewId) NavOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if target.Protected() && !c.gate.IsAuthenticated() {
		logging.Nav("Blocked navigation to protected view %s", target)
		return NavAuthRequired
	}
	if target == c.current {
		return NavUnchanged
	}

	// Pushing a new entry discards any forward history past the cursor.
	c.history = append(c.history[:c.cursor+1], NavigationEntry{View: target})
	c.cursor = len(c.history) - 1
	c.commitLocked(target)
	logging.NavDebug("Navigated to %s (history depth %d)", target, len(c.history))
	return NavChanged
}

// Replace switches to target by swapping the current history entry instead
// of pushing a new one. Auth-driven redirects use this so the abandoned view
// does not linger in the back stack.
func (c *Controller) Replace(target ViewId) NavOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if target.Protected() && !c.gate.IsAuthenticated() {
		return NavAuthRequired
	}
	if target == c.current {
		return NavUnchanged
	}

	if c.cursor < 0 {
		// Replace before Start seeds the history instead of swapping.
		c.history = []NavigationEntry{{View: target}}
		c.cursor = 0
	} else {
		c.history[c.cursor] = NavigationEntry{View: target}
	}
	c.commitLocked(target)
	logging.NavDebug("Replaced current entry with %s", target)
	return NavChanged
}

// Back moves one step toward the oldest history entry. It reports false when
// already at the start.
func (c *Controller) Back() (ViewId, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor <= 0 {
		return c.current, false
	}
	c.cursor--
	view := c.resolveEntryLocked()
	c.commitLocked(view)
	return view, true
}

// Forward moves one step toward the newest history entry. It reports false
// when already at the end.
func (c *Controller) Forward() (ViewId, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor < 0 || c.cursor >= len(c.history)-1 {
		return c.current, false
	}
	c.cursor++
	view := c.resolveEntryLocked()
	c.commitLocked(view)
	return view, true
}

// Current returns the view on screen.
func (c *Controller) Current() ViewId {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Fragment returns the route fragment replica, e.g. "#dashboard".
func (c *Controller) Fragment() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fragment
}

// History returns a copy of the history stack and the cursor position.
func (c *Controller) History() ([]NavigationEntry, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]NavigationEntry, len(c.history))
	copy(out, c.history)
	return out, c.cursor
}

// resolveEntryLocked determines the view for the entry under the cursor,
// falling back from the entry itself to the fragment and finally to landing
// when neither yields a valid view.
func (c *Controller) resolveEntryLocked() ViewId {
	if c.cursor >= 0 && c.cursor < len(c.history) {
		if view := c.history[c.cursor].View; view.Valid() {
			return view
		}
	}
	if view, ok := ParseView(trimFragment(c.fragment)); ok {
		return view
	}
	return ViewLanding
}

// commitLocked performs the triple write: current view, fragment cell, and
// state file move together. The history entry is assumed already in place.
// Callers hold c.mu.
func (c *Controller) commitLocked(view ViewId) {
	c.current = view
	c.fragment = "#" + string(view)
	if err := c.store.Save(view); err != nil {
		logging.Nav("Failed to persist view state: %v", err)
	}
}

func trimFragment(fragment string) string {
	if len(fragment) > 0 && fragment[0] == '#' {
		return fragment[1:]
	}
	return fragment
}
