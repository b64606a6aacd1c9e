// Package nav owns the current screen identifier, the navigation history
// stack, and protected-route gating. All three replicas of the selected view
// (history entry, route fragment, persisted state file) are written from one
// place so they can never drift apart.
package nav

// ViewId is an enumerated tag over the client's fixed set of screens.
type ViewId string

const (
	ViewLanding   ViewId = "landing"
	ViewDashboard ViewId = "dashboard"
	ViewReview    ViewId = "review"
	ViewMatcher   ViewId = "matcher"
	ViewTemplates ViewId = "templates"
	ViewSupport   ViewId = "support"
)

// validViews is the closed set of screens. Order matters for menu display.
var validViews = []ViewId{
	ViewLanding,
	ViewDashboard,
	ViewReview,
	ViewMatcher,
	ViewTemplates,
	ViewSupport,
}

// protectedViews are reachable only with an authenticated session.
var protectedViews = map[ViewId]bool{
	ViewReview:    true,
	ViewMatcher:   true,
	ViewTemplates: true,
}

// Views returns the full ordered view set.
func Views() []ViewId {
	out := make([]ViewId, len(validViews))
	copy(out, validViews)
	return out
}

// Valid reports whether v names a known screen.
func (v ViewId) Valid() bool {
	for _, w := range validViews {
		if v == w {
			return true
		}
	}
	return false
}

// Protected reports whether v requires an authenticated session.
func (v ViewId) Protected() bool {
	return protectedViews[v]
}

// Title returns the display name for the screen.
func (v ViewId) Title() string {
	switch v {
	case ViewLanding:
		return "FitForWorks"
	case ViewDashboard:
		return "Dashboard"
	case ViewReview:
		return "AI Review"
	case ViewMatcher:
		return "ResuMatcher"
	case ViewTemplates:
		return "Templates"
	case ViewSupport:
		return "Support"
	default:
		return string(v)
	}
}

// ParseView interprets s as a ViewId. Unknown or empty strings report
// ok=false; malformed input is treated as absent, never as an error.
func ParseView(s string) (ViewId, bool) {
	v := ViewId(s)
	if v.Valid() {
		return v, true
	}
	return "", false
}
