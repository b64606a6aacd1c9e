package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fitforworks/internal/logging"
)

// Provider is the external identity provider as the client sees it: token
// exchange, persisted-session lookup, sign-out, and a pushed event stream.
type Provider interface {
	// ExchangeTokens validates a redirect token pair with the provider and
	// installs it as the active session.
	ExchangeTokens(ctx context.Context, payload RedirectPayload) (*UserIdentity, error)

	// CurrentSession returns the user for a previously persisted session,
	// refreshing tokens if needed. Returns (nil, nil) when no session exists.
	CurrentSession(ctx context.Context) (*UserIdentity, error)

	// SignOut revokes the session with the provider and discards local
	// token state.
	SignOut(ctx context.Context) error

	// Events is the provider-pushed event stream. Closed by Close.
	Events() <-chan Event

	// Close releases the event stream. Safe to call once.
	Close()
}

// Token holds the provider session token details persisted between runs.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	Expiry       time.Time `json:"expiry"`
}

// HTTPProvider talks to a hosted auth service over its REST surface and
// persists the session token pair under the client's base directory.
type HTTPProvider struct {
	baseURL string
	anonKey string

	tokenFile string
	mu        sync.Mutex
	token     *Token

	events    chan Event
	closeOnce sync.Once
	httpc     *http.Client
}

// NewHTTPProvider creates a provider client rooted at baseURL, storing the
// session token file under dir.
func NewHTTPProvider(baseURL, anonKey, dir string) *HTTPProvider {
	p := &HTTPProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		anonKey:   anonKey,
		tokenFile: filepath.Join(dir, "session_tokens.json"),
		events:    make(chan Event, 8),
		httpc:     &http.Client{Timeout: 30 * time.Second},
	}
	// Best effort: a missing token file just means no persisted session.
	_ = p.loadToken()
	return p
}

// Events returns the provider event stream.
func (p *HTTPProvider) Events() <-chan Event { return p.events }

// Close closes the event stream.
func (p *HTTPProvider) Close() {
	p.closeOnce.Do(func() { close(p.events) })
}

func (p *HTTPProvider) loadToken() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.tokenFile)
	if err != nil {
		return err
	}
	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	p.token = &token
	return nil
}

func (p *HTTPProvider) saveToken() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token == nil {
		return nil
	}
	data, err := json.MarshalIndent(p.token, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.tokenFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(p.tokenFile, data, 0600)
}

func (p *HTTPProvider) clearToken() {
	p.mu.Lock()
	p.token = nil
	p.mu.Unlock()
	_ = os.Remove(p.tokenFile)
}

// ExchangeTokens installs a redirect token pair as the active session after
// validating it against the provider's user endpoint.
func (p *HTTPProvider) ExchangeTokens(ctx context.Context, payload RedirectPayload) (*UserIdentity, error) {
	user, err := p.fetchUser(ctx, payload.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	p.mu.Lock()
	p.token = &Token{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		// The redirect payload carries no expiry; assume the provider's
		// default access token lifetime and refresh from there.
		ExpiresIn: 3600,
		Expiry:    time.Now().Add(time.Hour),
	}
	p.mu.Unlock()

	if err := p.saveToken(); err != nil {
		logging.AuthError("failed to persist session tokens: %v", err)
	}
	return user, nil
}

// CurrentSession returns the user for the persisted session, refreshing the
// access token when it is near expiry.
func (p *HTTPProvider) CurrentSession(ctx context.Context) (*UserIdentity, error) {
	p.mu.Lock()
	if p.token == nil {
		p.mu.Unlock()
		return nil, nil
	}
	token := *p.token
	p.mu.Unlock()

	// Refresh with a margin so the caller never holds a token about to die.
	if time.Now().Add(5 * time.Minute).After(token.Expiry) {
		logging.AuthDebug("access token near expiry, refreshing")
		if err := p.refresh(ctx); err != nil {
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
		p.mu.Lock()
		token = *p.token
		p.mu.Unlock()
		p.emit(Event{Kind: EventTokenRefreshed})
	}

	return p.fetchUser(ctx, token.AccessToken)
}

// SignOut revokes the session and discards local token state. Local state is
// cleared even when revocation fails; the session is gone either way.
func (p *HTTPProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	token := p.token
	p.mu.Unlock()

	var revokeErr error
	if token != nil {
		req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/auth/v1/logout", nil)
		if err == nil {
			p.authHeaders(req, token.AccessToken)
			resp, err := p.httpc.Do(req)
			if err != nil {
				revokeErr = err
			} else {
				resp.Body.Close()
			}
		}
	}

	p.clearToken()
	p.emit(Event{Kind: EventSignedOut})
	return revokeErr
}

// NotifySignedIn pushes a signed_in event onto the stream. The interactive
// flag records whether an auth prompt was open when sign-in completed.
func (p *HTTPProvider) NotifySignedIn(user *UserIdentity, interactive bool) {
	p.emit(Event{Kind: EventSignedIn, User: user, Interactive: interactive})
}

func (p *HTTPProvider) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		logging.AuthError("auth event dropped: %s", ev.Kind)
	}
}

func (p *HTTPProvider) refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.token == nil || p.token.RefreshToken == "" {
		p.mu.Unlock()
		return fmt.Errorf("no refresh token available")
	}
	refreshToken := p.token.RefreshToken
	p.mu.Unlock()

	body, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	u := p.baseURL + "/auth/v1/token?grant_type=refresh_token"
	req, err := http.NewRequestWithContext(ctx, "POST", u, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	p.authHeaders(req, "")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("refresh failed (%d): %s", resp.StatusCode, string(b))
	}

	var newToken Token
	if err := json.NewDecoder(resp.Body).Decode(&newToken); err != nil {
		return err
	}

	p.mu.Lock()
	p.token.AccessToken = newToken.AccessToken
	p.token.ExpiresIn = newToken.ExpiresIn
	p.token.Expiry = time.Now().Add(time.Duration(newToken.ExpiresIn) * time.Second)
	if newToken.RefreshToken != "" {
		// The provider may rotate refresh tokens.
		p.token.RefreshToken = newToken.RefreshToken
	}
	p.mu.Unlock()

	return p.saveToken()
}

func (p *HTTPProvider) fetchUser(ctx context.Context, accessToken string) (*UserIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	p.authHeaders(req, accessToken)

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("user lookup failed (%d): %s", resp.StatusCode, string(b))
	}

	var payload struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Metadata struct {
			FullName  string `json:"full_name"`
			AvatarURL string `json:"avatar_url"`
		} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return &UserIdentity{
		ID:        payload.ID,
		Name:      payload.Metadata.FullName,
		Email:     payload.Email,
		AvatarURL: payload.Metadata.AvatarURL,
	}, nil
}

func (p *HTTPProvider) authHeaders(req *http.Request, accessToken string) {
	if p.anonKey != "" {
		req.Header.Set("apikey", p.anonKey)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

// AuthorizeURL builds the interactive sign-in URL for the given OAuth
// provider name, redirecting back to the local callback server.
func (p *HTTPProvider) AuthorizeURL(oauthProvider, redirectTo string) string {
	u, err := url.Parse(p.baseURL + "/auth/v1/authorize")
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("provider", oauthProvider)
	q.Set("redirect_to", redirectTo)
	u.RawQuery = q.Encode()
	return u.String()
}
