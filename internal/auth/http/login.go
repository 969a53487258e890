package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
)

// LoginHandler serves POST /api/auth/login.
type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Checks an email and password and returns a signed session token.
//	@Description	The token is the bearer credential for authorize and for the user and project endpoints.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"message, token"
//	@Failure		400		{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		401		{object}	authsdk.ErrorResponse	"message, status, name"
//	@Router			/api/auth/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := decodeJSONBody(r, loginBodySchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.SessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Message: "Logged in as " + session.User.ID,
		Token:   session.Token,
	})
}
