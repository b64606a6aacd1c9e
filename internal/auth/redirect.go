package auth

import (
	"net/url"
	"strings"
)

// RedirectPayload is the token material the provider appends to the route
// fragment after an interactive sign-in.
type RedirectPayload struct {
	AccessToken  string
	RefreshToken string
}

// ParseRedirectPayload extracts an access/refresh token pair from a route
// fragment like "#access_token=...&refresh_token=...". It returns ok=false
// when the fragment carries no complete payload; malformed fragments are
// treated the same as absent ones.
func ParseRedirectPayload(fragment string) (RedirectPayload, bool) {
	raw := strings.TrimPrefix(fragment, "#")
	if raw == "" || !strings.Contains(raw, "access_token") {
		return RedirectPayload{}, false
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return RedirectPayload{}, false
	}

	p := RedirectPayload{
		AccessToken:  values.Get("access_token"),
		RefreshToken: values.Get("refresh_token"),
	}
	if p.AccessToken == "" || p.RefreshToken == "" {
		return RedirectPayload{}, false
	}
	return p, true
}

// HasRedirectPayload reports whether the fragment looks like an auth
// redirect, including provider error callbacks, without validating it.
func HasRedirectPayload(fragment string) bool {
	raw := strings.TrimPrefix(fragment, "#")
	return strings.Contains(raw, "access_token") || strings.Contains(raw, "error=")
}
