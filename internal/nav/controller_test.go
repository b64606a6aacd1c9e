package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGate struct {
	authed bool
}

func (g *fakeGate) IsAuthenticated() bool { return g.authed }

func newTestController(t *testing.T, authed bool) (*Controller, *StateStore) {
	t.Helper()
	store := NewStateStore(t.TempDir())
	return NewController(&fakeGate{authed: authed}, store), store
}

// requireReplicas asserts the triple-write invariant: the entry under the
// cursor, the fragment cell, and the state file all name the current view.
func requireReplicas(t *testing.T, c *Controller, store *StateStore, want ViewId) {
	t.Helper()
	require.Equal(t, want, c.Current())
	require.Equal(t, "#"+string(want), c.Fragment())

	history, cursor := c.History()
	require.GreaterOrEqual(t, cursor, 0)
	require.Equal(t, want, history[cursor].View)

	persisted, ok := store.Load()
	require.True(t, ok, "state file should exist")
	require.Equal(t, want, persisted)
}

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, ok := ParseView(string(v))
		require.True(t, ok)
		assert.Equal(t, v, got)
	}

	for _, s := range []string{"", "settings", "DASHBOARD", "access_token=abc"} {
		_, ok := ParseView(s)
		assert.False(t, ok, "%q should not parse", s)
	}
}

func TestProtectedViews(t *testing.T) {
	assert.True(t, ViewReview.Protected())
	assert.True(t, ViewMatcher.Protected())
	assert.True(t, ViewTemplates.Protected())
	assert.False(t, ViewLanding.Protected())
	assert.False(t, ViewDashboard.Protected())
	assert.False(t, ViewSupport.Protected())
}

func TestResolveInitialViewPrecedence(t *testing.T) {
	c, store := newTestController(t, true)

	// Consumed auth redirect beats everything.
	assert.Equal(t, ViewDashboard, c.ResolveInitialView("#review", true))

	// Valid fragment beats the persisted view.
	require.NoError(t, store.Save(ViewSupport))
	assert.Equal(t, ViewReview, c.ResolveInitialView("#review", false))

	// Invalid fragment falls through to the persisted view.
	assert.Equal(t, ViewSupport, c.ResolveInitialView("#nope", false))
	assert.Equal(t, ViewSupport, c.ResolveInitialView("", false))

	// Nothing persisted: landing.
	store.Clear()
	assert.Equal(t, ViewLanding, c.ResolveInitialView("", false))
}

func TestResolveInitialViewCorruptStateFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStateStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0644))

	c := NewController(&fakeGate{}, store)
	assert.Equal(t, ViewLanding, c.ResolveInitialView("", false))
}

func TestNavigateTripleWrite(t *testing.T) {
	c, store := newTestController(t, true)
	c.Start(ViewLanding)
	requireReplicas(t, c, store, ViewLanding)

	require.Equal(t, NavChanged, c.Navigate(ViewDashboard))
	requireReplicas(t, c, store, ViewDashboard)

	require.Equal(t, NavChanged, c.Navigate(ViewReview))
	requireReplicas(t, c, store, ViewReview)
}

func TestNavigateIdempotent(t *testing.T) {
	c, store := newTestController(t, true)
	c.Start(ViewDashboard)

	require.Equal(t, NavUnchanged, c.Navigate(ViewDashboard))
	history, _ := c.History()
	assert.Len(t, history, 1, "no entry pushed for same-view navigation")
	requireReplicas(t, c, store, ViewDashboard)
}

func TestNavigateProtectedGate(t *testing.T) {
	gate := &fakeGate{authed: false}
	store := NewStateStore(t.TempDir())
	c := NewController(gate, store)
	c.Start(ViewLanding)

	for _, target := range []ViewId{ViewReview, ViewMatcher, ViewTemplates} {
		require.Equal(t, NavAuthRequired, c.Navigate(target))
		requireReplicas(t, c, store, ViewLanding)
	}

	// Public views pass regardless of session state.
	require.Equal(t, NavChanged, c.Navigate(ViewSupport))
	requireReplicas(t, c, store, ViewSupport)

	// Signing in lifts the gate.
	gate.authed = true
	require.Equal(t, NavChanged, c.Navigate(ViewReview))
	requireReplicas(t, c, store, ViewReview)
}

func TestReplaceDoesNotGrowHistory(t *testing.T) {
	c, store := newTestController(t, true)
	c.Start(ViewLanding)
	c.Navigate(ViewSupport)

	require.Equal(t, NavChanged, c.Replace(ViewDashboard))
	requireReplicas(t, c, store, ViewDashboard)

	history, _ := c.History()
	require.Len(t, history, 2, "replace swaps the top entry")

	// Back skips the replaced view entirely.
	view, ok := c.Back()
	require.True(t, ok)
	assert.Equal(t, ViewLanding, view)
}

func TestReplaceBeforeStartSeedsHistory(t *testing.T) {
	// An auth event can land before the initial view is resolved.
	c, store := newTestController(t, false)

	require.Equal(t, NavChanged, c.Replace(ViewLanding))
	requireReplicas(t, c, store, ViewLanding)

	history, cursor := c.History()
	require.Len(t, history, 1)
	require.Equal(t, 0, cursor)
}

func TestBackForward(t *testing.T) {
	c, store := newTestController(t, true)
	c.Start(ViewLanding)
	c.Navigate(ViewDashboard)
	c.Navigate(ViewReview)

	view, ok := c.Back()
	require.True(t, ok)
	assert.Equal(t, ViewDashboard, view)
	requireReplicas(t, c, store, ViewDashboard)

	view, ok = c.Back()
	require.True(t, ok)
	assert.Equal(t, ViewLanding, view)

	_, ok = c.Back()
	assert.False(t, ok, "at start of history")

	view, ok = c.Forward()
	require.True(t, ok)
	assert.Equal(t, ViewDashboard, view)

	view, ok = c.Forward()
	require.True(t, ok)
	assert.Equal(t, ViewReview, view)

	_, ok = c.Forward()
	assert.False(t, ok, "at end of history")
}

func TestNavigateTruncatesForwardHistory(t *testing.T) {
	c, _ := newTestController(t, true)
	c.Start(ViewLanding)
	c.Navigate(ViewDashboard)
	c.Navigate(ViewSupport)

	_, ok := c.Back()
	require.True(t, ok)

	// A fresh navigation from the middle of the stack drops the tail.
	require.Equal(t, NavChanged, c.Navigate(ViewLanding))
	_, ok = c.Forward()
	assert.False(t, ok, "forward history discarded by new navigation")

	history, cursor := c.History()
	assert.Equal(t, len(history)-1, cursor)
	assert.Equal(t, ViewLanding, history[cursor].View)
}

func TestStateStoreRoundTrip(t *testing.T) {
	store := NewStateStore(t.TempDir())

	_, ok := store.Load()
	assert.False(t, ok, "fresh store has no state")

	require.NoError(t, store.Save(ViewMatcher))
	view, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, ViewMatcher, view)

	store.Clear()
	_, ok = store.Load()
	assert.False(t, ok)
}
