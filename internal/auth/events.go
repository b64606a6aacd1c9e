package auth

// EventKind identifies a provider-pushed auth event.
type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventTokenRefreshed EventKind = "token_refreshed"
)

// Event is a typed auth event from the provider stream.
//
// Interactive is set when the event was caused by an explicit interactive
// sign-in (an auth prompt was open). A signed_in event from passive session
// recovery carries Interactive=false, so consumers can tell "user just
// logged in" apart from "restored an existing login" without guessing from
// timing.
type Event struct {
	Kind        EventKind
	User        *UserIdentity
	Interactive bool
}

// Handler consumes auth events. Exactly one handler is registered at a time.
type Handler func(Event)
