package authsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AuthorizeURL builds the path and query of an authorization request.
func AuthorizeURL(clientID, redirectURI string, scope []string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", strings.Join(scope, ","))
	return "/api/oauth2/authorize?" + q.Encode()
}

// Authorize asks the server for an authorization code on behalf of the user
// holding sessionToken. The redirect is not followed; the code is read from
// its Location header.
func (c *SDKClient) Authorize(
	ctx context.Context,
	sessionToken, clientID, redirectURI string,
	scope []string,
) (string, error) {
	resp, err := c.send(ctx, c.noRedirect(), http.MethodGet, AuthorizeURL(clientID, redirectURI, scope), nil, nil, sessionToken)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		return "", parseErrorResponse(resp, body)
	}

	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		return "", fmt.Errorf("invalid redirect location: %w", err)
	}
	code := loc.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("redirect carries no code: %s", loc)
	}
	return code, nil
}

// ExchangeCode trades an authorization code for an access token. The body is
// sent form encoded, as RFC 6749 clients do.
func (c *SDKClient) ExchangeCode(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", req.ClientID)
	form.Set("client_secret", req.ClientSecret)
	form.Set("code", req.Code)
	form.Set("redirect_uri", req.RedirectURI)

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/oauth2/token",
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		"",
	)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// UserInfo returns the profile attributes the access token was granted.
func (c *SDKClient) UserInfo(ctx context.Context, accessToken string) (UserInfoResponse, error) {
	var info UserInfoResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/oauth2/userinfo", nil, &info, accessToken, http.StatusOK); err != nil {
		return nil, err
	}
	return info, nil
}
