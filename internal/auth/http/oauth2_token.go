package http

import (
	"errors"
	"mime"
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

// TokenHandler serves POST /api/oauth2/token.
// The body may be JSON or application/x-www-form-urlencoded.
type TokenHandler struct {
	OAuth2Service *service.OAuth2Service
	Metrics       *Metrics
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 token endpoint
//	@Description	Exchanges an authorization code for an access token. Each code can be exchanged once.
//	@Description	When the granted scope includes openid the response also carries a signed id_token.
//	@Tags			OAuth2
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		authsdk.TokenRequest	true	"Code exchange"
//	@Success		200		{object}	authsdk.TokenResponse	"access_token, token_type, expires_in, id_token"
//	@Failure		400		{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		403		{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		500		{object}	authsdk.ErrorResponse	"message, status, name"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Header			200		{string}	Pragma					"no-cache"
//	@Router			/api/oauth2/token [post]
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseTokenRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.OAuth2Service.Token(ctx, service.TokenRequest{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Code:         req.Code,
		RedirectURI:  req.RedirectURI,
	})
	if errors.Is(err, service.ErrForbidden) {
		h.Metrics.rejectedExchanges.Inc()
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Metrics.tokensIssued.Inc()
	slogx.FromContext(ctx).Debug("token exchanged", "client_id", req.ClientID)

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
		IDToken:     resp.IDToken,
	})
}

func parseTokenRequest(w http.ResponseWriter, r *http.Request) (authsdk.TokenRequest, error) {
	var req authsdk.TokenRequest

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		err := decodeJSONBody(r, tokenBodySchema, &req)
		return req, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return req, httpx.NewError(http.StatusBadRequest, "Malformed request", err)
	}
	if err := validate(tokenBodySchema, valuesDocument(r.PostForm)); err != nil {
		return req, err
	}

	return authsdk.TokenRequest{
		GrantType:    r.PostForm.Get("grant_type"),
		ClientID:     r.PostForm.Get("client_id"),
		ClientSecret: r.PostForm.Get("client_secret"),
		Code:         r.PostForm.Get("code"),
		RedirectURI:  r.PostForm.Get("redirect_uri"),
	}, nil
}
