package wallpaper

import (
	"net/http"
)

// UserAgentTransport wraps an http.RoundTripper and adds a User-Agent header.
type UserAgentTransport struct {
	http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction, adding the User-Agent header.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", t.UserAgent)
	return t.base().RoundTrip(clonedReq)
}

func (t *UserAgentTransport) base() http.RoundTripper {
	if t.RoundTripper != nil {
		return t.RoundTripper
	}
	return http.DefaultTransport
}

// NewHTTPClient returns the client shared by the catalog and the downloaders.
// Per-call timeouts are applied through request contexts.
func NewHTTPClient(userAgent string) *http.Client {
	return &http.Client{
		Transport: &UserAgentTransport{
			RoundTripper: http.DefaultTransport,
			UserAgent:    userAgent,
		},
	}
}
