package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
)

// AuthorizeHandler serves GET /api/oauth2/authorize. The resource owner is
// whoever the session token in front of it resolved to.
type AuthorizeHandler struct {
	OAuth2Service *service.OAuth2Service
	Metrics       *Metrics
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 authorization endpoint
//	@Description	Issues a one-time authorization code for the logged in user and redirects to the project's redirect URL.
//	@Description	redirect_uri must equal the registered redirect URL byte for byte and every requested scope must be declared by the project.
//	@Tags			OAuth2
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer session token"
//	@Param			response_type	query		string					true	"Must be 'code'"	default(code)
//	@Param			client_id		query		string					true	"Project id"
//	@Param			redirect_uri	query		string					true	"Registered redirect URL"
//	@Param			scope			query		string					true	"Comma separated scope"	example(given_name,email)
//	@Success		302				{string}	string					"Redirect to redirect_uri?code=..."
//	@Failure		400				{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		401				{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		403				{object}	authsdk.ErrorResponse	"message, status, name"
//	@Router			/api/oauth2/authorize [get]
func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, ok := httpx.SubjectFromContext(ctx)
	if !ok {
		writeError(w, r, httpx.Unauthorized(httpx.MsgCheckAuthenticate))
		return
	}

	query := r.URL.Query()
	if err := validate(authorizeQuerySchema, valuesDocument(query)); err != nil {
		writeError(w, r, err)
		return
	}

	scope := domain.ParseScope(query.Get("scope"))
	if len(scope) == 0 {
		writeError(w, r, httpx.BadRequest("scope: at least one value is required"))
		return
	}

	redirect, err := h.OAuth2Service.Authorize(ctx, service.AuthorizeRequest{
		ResourceOwner: owner,
		ClientID:      query.Get("client_id"),
		RedirectURI:   query.Get("redirect_uri"),
		Scope:         scope,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Metrics.codesIssued.Inc()
	httpx.NoCache(w)
	http.Redirect(w, r, redirect, http.StatusFound)
}
