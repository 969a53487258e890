package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/idx"
)

// ProjectsHandler handles the client application endpoints.
type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

// HandleCreate handles POST /api/projects
//
//	@Summary		Register project
//	@Description	Registers a client application owned by the authenticated user.
//	@Description	The response carries the plaintext secret. It is not stored and cannot be retrieved again.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer session token"
//	@Param			request			body		authsdk.CreateProjectRequest	true	"New project"
//	@Success		201				{object}	authsdk.CreatedProjectResponse	"project and its secret"
//	@Header			201				{string}	Location						"/api/projects/{id}"
//	@Failure		400				{object}	authsdk.ErrorResponse			"message, status, name"
//	@Failure		401				{object}	authsdk.ErrorResponse			"message, status, name"
//	@Failure		409				{object}	authsdk.ErrorResponse			"name or redirect URL already registered"
//	@Router			/api/projects [post]
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creator, ok := httpx.SubjectFromContext(ctx)
	if !ok {
		writeError(w, r, httpx.Unauthorized(httpx.MsgCheckAuthenticate))
		return
	}

	var req authsdk.CreateProjectRequest
	if err := decodeJSONBody(r, createProjectSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.ProjectService.Create(ctx, service.NewProject{
		Name:        req.Name,
		RedirectURL: req.RedirectURL,
		Scope:       req.Scope,
		CreatorID:   creator,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.Created(w, "/api/projects/"+created.ID, authsdk.CreatedProjectResponse{
		ProjectResponse: toProjectResponse(created.Project),
		Secret:          created.Secret,
	})
}

// HandleGet handles GET /api/projects/{id}
//
//	@Summary		Get project
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string					true	"Project id"
//	@Success		200	{object}	authsdk.ProjectResponse	"project without its secret"
//	@Failure		404	{object}	authsdk.ErrorResponse	"message, status, name"
//	@Router			/api/projects/{id} [get]
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		httpx.WriteError(w, r, pathNotFound(r))
		return
	}

	p, err := h.ProjectService.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(p))
}

func toProjectResponse(p domain.Project) authsdk.ProjectResponse {
	return authsdk.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		RedirectURL: p.RedirectURL,
		Scope:       p.Scope,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
