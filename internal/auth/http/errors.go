package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

const (
	MsgForbidden          = "Project not allowed to request"
	MsgNotPermitted       = "Not allowed to perform this action"
	MsgInvalidCredentials = "Invalid email or password"
	MsgNotFound           = "Resource not found"
	MsgConflict           = "Resource already exists"
)

// mapError translates service and store sentinels into HTTP errors.
// Anything it does not recognise is left for WriteError to turn into a 500.
func mapError(err error) error {
	var he *httpx.Error
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, service.ErrForbidden):
		return httpx.Forbidden(MsgForbidden, err)
	case errors.Is(err, service.ErrNotPermitted):
		return httpx.Forbidden(MsgNotPermitted, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		return httpx.NewError(http.StatusUnauthorized, MsgInvalidCredentials, err)
	case errors.Is(err, store.ErrNotFound):
		return httpx.NewError(http.StatusNotFound, MsgNotFound, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return httpx.Conflict(MsgConflict, err)
	}
	return err
}

// writeError maps err and renders it. Server errors are logged here so
// handlers only need to return.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrUnknownSubject) {
		slogx.FromContext(r.Context()).Warn("session user no longer exists", "err", err)
		httpx.WriteInvalidToken(w, r, "unknown subject")
		return
	}

	mapped := mapError(err)

	var he *httpx.Error
	if !errors.As(mapped, &he) || he.Status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
	}
	httpx.WriteError(w, r, mapped)
}

// pathNotFound is the 404 for any path no route serves.
func pathNotFound(r *http.Request) error {
	return httpx.NotFound(fmt.Sprintf("Path not found: '%s'", r.URL.Path))
}

// NotFoundHandler answers every request that matched no route.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, pathNotFound(r))
	}
}
