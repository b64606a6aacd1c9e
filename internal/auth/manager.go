package auth

import (
	"context"
	"sync"

	"fitforworks/internal/logging"
)

// InitResult is the outcome of Manager.Initialize.
type InitResult struct {
	// Status is the terminal session status (never StatusLoading).
	Status Status

	// Fragment is the route fragment with any consumed redirect payload
	// stripped. When no payload was present it is returned unchanged.
	Fragment string

	// ForceDashboard is set when a redirect payload was exchanged
	// successfully: the pending destination is the dashboard. For a
	// passively recovered session the current view is preserved instead.
	ForceDashboard bool
}

// Manager owns the process-wide Session cell. It is the single writer of
// session state: Initialize resolves the startup state once, and the
// subscribed event stream applies provider-pushed changes afterward.
type Manager struct {
	mu       sync.RWMutex
	session  Session
	provider Provider

	initOnce           sync.Once
	initFragment       string
	initForceDashboard bool

	// Interactive sign-in tracking: set while an auth prompt is open so
	// the resulting signed_in event carries the interactive flag.
	promptOpen bool

	subOnce    sync.Once
	subStarted bool
	subDone    chan struct{}
	subQuit    chan struct{}
}

// NewManager creates a session manager in the loading state.
func NewManager(provider Provider) *Manager {
	return &Manager{
		session:  Session{Status: StatusLoading},
		provider: provider,
		subDone:  make(chan struct{}),
		subQuit:  make(chan struct{}),
	}
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Status returns the current session status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Status
}

// IsAuthenticated reports whether the session is authenticated.
func (m *Manager) IsAuthenticated() bool {
	return m.Status() == StatusAuthenticated
}

// Initialize resolves the startup session state. It runs its work at most
// once; later calls return the settled state without re-exchanging tokens.
//
// Resolution order:
//  1. A redirect payload in the fragment is exchanged with the provider;
//     success authenticates the session, consumes the payload, and pends
//     navigation to the dashboard.
//  2. Otherwise the provider is queried for a persisted session; if one
//     exists the session authenticates with the current view preserved.
//  3. Otherwise, or on any error, the session is anonymous. Auth failures
//     are never fatal.
func (m *Manager) Initialize(ctx context.Context, fragment string) InitResult {
	m.initOnce.Do(func() {
		m.initialize(ctx, fragment)
	})

	m.mu.RLock()
	defer m.mu.RUnlock()
	return InitResult{
		Status:         m.session.Status,
		Fragment:       m.initFragment,
		ForceDashboard: m.initForceDashboard,
	}
}

func (m *Manager) initialize(ctx context.Context, fragment string) {
	result := InitResult{Fragment: fragment}

	if payload, ok := ParseRedirectPayload(fragment); ok {
		logging.Auth("redirect payload detected, exchanging tokens")
		user, err := m.provider.ExchangeTokens(ctx, payload)
		if err == nil && user != nil {
			// Consumed exactly once: strip the payload from the fragment.
			m.setSession(Session{Status: StatusAuthenticated, User: user})
			result.Fragment = ""
			result.ForceDashboard = true
			m.storeInitResult(result)
			return
		}
		logging.AuthError("token exchange failed, falling back to session query: %v", err)
	} else if HasRedirectPayload(fragment) {
		// Error callback or incomplete payload: strip it and fall through.
		result.Fragment = ""
	}

	user, err := m.provider.CurrentSession(ctx)
	if err != nil {
		logging.AuthError("session query failed: %v", err)
	}
	if user != nil {
		logging.Auth("restored persisted session for %s", user.Email)
		m.setSession(Session{Status: StatusAuthenticated, User: user})
	} else {
		m.setSession(Session{Status: StatusAnonymous})
	}
	m.storeInitResult(result)
}

func (m *Manager) storeInitResult(r InitResult) {
	m.mu.Lock()
	m.initFragment = r.Fragment
	m.initForceDashboard = r.ForceDashboard
	m.mu.Unlock()
}

func (m *Manager) setSession(s Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
}

// SetPromptOpen records whether an auth prompt is currently open. The flag
// marks the next signed_in event as interactive.
func (m *Manager) SetPromptOpen(open bool) {
	m.mu.Lock()
	m.promptOpen = open
	m.mu.Unlock()
}

// PromptOpen reports whether an auth prompt is open.
func (m *Manager) PromptOpen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.promptOpen
}

// Subscribe registers the single event handler and starts consuming the
// provider stream. The manager applies each event to the session cell before
// invoking the handler. Subscribe may be called once; Close tears the
// subscription down.
func (m *Manager) Subscribe(handler Handler) {
	m.subOnce.Do(func() {
		m.mu.Lock()
		m.subStarted = true
		m.mu.Unlock()
		go func() {
			defer close(m.subDone)
			for {
				select {
				case ev, ok := <-m.provider.Events():
					if !ok {
						return
					}
					m.apply(ev)
					if handler != nil {
						handler(ev)
					}
				case <-m.subQuit:
					return
				}
			}
		}()
	})
}

func (m *Manager) apply(ev Event) {
	switch ev.Kind {
	case EventSignedIn:
		logging.Auth("signed_in event (interactive=%v)", ev.Interactive)
		m.setSession(Session{Status: StatusAuthenticated, User: ev.User})
	case EventSignedOut:
		logging.Auth("signed_out event")
		m.setSession(Session{Status: StatusAnonymous})
	case EventTokenRefreshed:
		logging.AuthDebug("token_refreshed event")
		if ev.User != nil {
			m.setSession(Session{Status: StatusAuthenticated, User: ev.User})
		}
	}
}

// SignOut revokes the provider session and forces the local session to
// anonymous. Provider errors are logged, not returned: the local session is
// discarded regardless.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		logging.AuthError("provider sign-out failed: %v", err)
	}
	m.setSession(Session{Status: StatusAnonymous})
}

// Close stops the event subscription and releases the provider stream.
func (m *Manager) Close() {
	select {
	case <-m.subQuit:
	default:
		close(m.subQuit)
	}
	m.provider.Close()

	m.mu.RLock()
	started := m.subStarted
	m.mu.RUnlock()
	if started {
		<-m.subDone
	}
}
