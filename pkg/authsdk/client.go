package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the oauthd API. It is safe for concurrent use.
// Calls that need a session or access token take it as an argument.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new client for the server at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// noRedirect returns a copy of the HTTP client that hands 3xx responses back
// to the caller instead of following them.
func (c *SDKClient) noRedirect() *http.Client {
	hc := *c.HTTPClient
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &hc
}
