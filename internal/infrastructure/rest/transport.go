package rest

import (
	"net/http"
	"strings"
)

// TokenProvider supplies the current bearer token, or "" when no session is
// active. The session manager is the canonical implementation.
type TokenProvider interface {
	Token() string
}

// AuthFailureFunc is invoked when a non-public endpoint answers 401/403.
// It must be safe to call from any goroutine and must not issue requests
// through the same client.
type AuthFailureFunc func(path string, status int)

// bearerTransport attaches the session token to every outbound request and
// watches responses for authentication failures. Public browsing endpoints
// are exempt from forced teardown so anonymous users are never logged out by
// a personalizing 401.
type bearerTransport struct {
	base          http.RoundTripper
	tokens        TokenProvider
	onAuthFailure AuthFailureFunc
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract the request must not be mutated in place.
	out := req.Clone(req.Context())
	if token := t.tokens.Token(); token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if !isPublicPath(req.URL.Path) && t.onAuthFailure != nil {
			t.onAuthFailure(req.URL.Path, resp.StatusCode)
		}
	}
	return resp, nil
}

// protectedSubroutes are property subpaths that personalize or mutate and
// therefore keep the forced-teardown behavior.
var protectedSubroutes = []string{"/book", "/shortlist", "/toggle-shortlist", "/user-booking"}

// isPublicPath reports whether the path serves anonymous browsing: property
// listing, featured, search and detail pages.
func isPublicPath(path string) bool {
	if path != "/property" && !strings.HasPrefix(path, "/property/") {
		return false
	}
	for _, sub := range protectedSubroutes {
		if strings.HasSuffix(path, sub) {
			return false
		}
	}
	return true
}
