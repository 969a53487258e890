package http

import (
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/idx"
)

// UsersHandler handles the user management endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleCreate handles POST /api/users
//
//	@Summary		Register user
//	@Description	Creates a user. The password is hashed before it is stored and never returned.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CreateUserRequest	true	"New user"
//	@Success		201		{object}	authsdk.UserResponse		"created user"
//	@Header			201		{string}	Location					"/api/users/{id}"
//	@Failure		400		{object}	authsdk.ErrorResponse		"message, status, name"
//	@Failure		409		{object}	authsdk.ErrorResponse		"email already registered"
//	@Router			/api/users [post]
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateUserRequest
	if err := decodeJSONBody(r, createUserSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserService.Create(r.Context(), service.NewUser(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.Created(w, "/api/users/"+u.ID, toUserResponse(u))
}

// HandleGet handles GET /api/users/{id}
//
//	@Summary		Get user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string					true	"User id"
//	@Success		200	{object}	authsdk.UserResponse	"user"
//	@Failure		404	{object}	authsdk.ErrorResponse	"message, status, name"
//	@Router			/api/users/{id} [get]
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDFromPath(w, r)
	if !ok {
		return
	}

	u, err := h.UserService.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdate handles PATCH /api/users/{id}
//
//	@Summary		Update user
//	@Description	Changes the given fields of the authenticated user. Users can only change themselves.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer session token"
//	@Param			id				path		string						true	"User id"
//	@Param			request			body		authsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200				{object}	authsdk.UserResponse		"updated user"
//	@Failure		400				{object}	authsdk.ErrorResponse		"message, status, name"
//	@Failure		401				{object}	authsdk.ErrorResponse		"message, status, name"
//	@Failure		403				{object}	authsdk.ErrorResponse		"message, status, name"
//	@Failure		404				{object}	authsdk.ErrorResponse		"message, status, name"
//	@Failure		409				{object}	authsdk.ErrorResponse		"email already registered"
//	@Router			/api/users/{id} [patch]
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDFromPath(w, r)
	if !ok {
		return
	}
	actor, err := requireSelf(r, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req authsdk.UpdateUserRequest
	if err := decodeJSONBody(r, updateUserSchema, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserService.Update(r.Context(), actor, id, service.UserPatch(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleDelete handles DELETE /api/users/{id}
//
//	@Summary		Delete user
//	@Description	Deletes the authenticated user together with their projects and authorization requests.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer session token"
//	@Param			id				path		string					true	"User id"
//	@Success		200				{object}	authsdk.DeletedResponse	"deleted id"
//	@Failure		401				{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		403				{object}	authsdk.ErrorResponse	"message, status, name"
//	@Failure		404				{object}	authsdk.ErrorResponse	"message, status, name"
//	@Router			/api/users/{id} [delete]
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDFromPath(w, r)
	if !ok {
		return
	}
	actor, err := requireSelf(r, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.UserService.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.DeletedResponse{Deleted: id})
}

// userIDFromPath only accepts well formed ids. Anything else is treated as
// a path no route serves.
func userIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		httpx.WriteError(w, r, pathNotFound(r))
		return "", false
	}
	return id, true
}

// requireSelf checks the authenticated subject is the user being acted on.
func requireSelf(r *http.Request, id string) (string, error) {
	actor, ok := httpx.SubjectFromContext(r.Context())
	if !ok {
		return "", httpx.Unauthorized(httpx.MsgCheckAuthenticate)
	}
	if actor != id {
		return "", service.ErrNotPermitted
	}
	return actor, nil
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		GivenName:   u.GivenName,
		FamilyName:  u.FamilyName,
		Picture:     u.Picture,
		PhoneNumber: u.PhoneNumber,
		Birthdate:   u.Birthdate,
		Gender:      u.Gender,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
