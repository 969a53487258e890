package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
)

// UserInfoHandler serves GET /api/oauth2/userinfo. The bearer credential is
// an opaque access token, so the gate in front passes it through unverified.
type UserInfoHandler struct {
	OAuth2Service *service.OAuth2Service
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 UserInfo endpoint
//	@Description	Returns the profile attributes granted to the access token, keyed by scope name, plus sub.
//	@Tags			OAuth2
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer access token"
//	@Success		200				{object}	authsdk.UserInfoResponse	"granted profile attributes"
//	@Failure		401				{object}	authsdk.ErrorResponse		"message, status, name"
//	@Failure		403				{object}	authsdk.ErrorResponse		"message, status, name"
//	@Router			/api/oauth2/userinfo [get]
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := httpx.TokenFromContext(ctx)
	if !ok {
		writeError(w, r, httpx.Unauthorized(httpx.MsgCheckAuthenticate))
		return
	}

	profile, err := h.OAuth2Service.UserInfo(ctx, token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse(profile))
}
