// Package auth owns the client session: its asynchronous initialization from
// a redirect payload or a persisted provider session, the provider event
// stream, and sign-out. Exactly one Session exists per running client; it is
// created as StatusLoading and reaches a terminal status exactly once during
// Initialize.
package auth

// Status is the lifecycle state of the client session.
type Status int

const (
	// StatusLoading means Initialize has not yet resolved. Gated content
	// must not be rendered while the session is loading.
	StatusLoading Status = iota

	// StatusAuthenticated means a provider session is active.
	StatusAuthenticated

	// StatusAnonymous means no provider session exists.
	StatusAnonymous
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// UserIdentity is the opaque user record supplied by the auth provider.
type UserIdentity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DisplayName returns the best available short name for greeting the user.
func (u *UserIdentity) DisplayName() string {
	if u == nil {
		return "there"
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "there"
}

// Session is the process-wide auth state cell.
type Session struct {
	Status Status
	User   *UserIdentity
}
