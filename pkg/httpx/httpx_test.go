package httpx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) { return s.claims, s.err }

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpx.ErrorBody {
	t.Helper()
	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	valid := stubVerifier{claims: jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}}
	expired := stubVerifier{err: jwtx.ErrExpired}

	tests := []struct {
		name            string
		verifier        jwtx.Verifier
		verifySignature bool
		header          string
		wantStatus      int
		wantChallenge   string
		wantSubject     string
		wantToken       string
	}{
		{"missing header", valid, true, "", http.StatusUnauthorized, "Bearer missing_token", "", ""},
		{"basic scheme", valid, true, "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "Bearer unknown_scheme", "", ""},
		{"empty bearer", valid, true, "Bearer ", http.StatusUnauthorized, "Bearer missing_token", "", ""},
		{"invalid token", expired, true, "Bearer abc", http.StatusUnauthorized, "Bearer invalid_token: token expired", "", ""},
		{"verified", valid, true, "Bearer abc", http.StatusOK, "", "user-1", ""},
		{"unverified passthrough", expired, false, "Bearer opaque==", http.StatusOK, "", "", "opaque=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject, gotToken string
			h := httpx.Authenticate(tt.verifier, tt.verifySignature)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = httpx.SubjectFromContext(r.Context())
				gotToken, _ = httpx.TokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantSubject, gotSubject)
			require.Equal(t, tt.wantToken, gotToken)

			if tt.wantStatus == http.StatusUnauthorized {
				require.Equal(t, tt.wantChallenge, rec.Header().Get("WWW-Authenticate"))
				body := decodeError(t, rec)
				require.Equal(t, httpx.MsgCheckAuthenticate, body.Message)
				require.Equal(t, "Unauthorized", body.Name)
				require.Equal(t, http.StatusUnauthorized, body.Status)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantName   string
		wantMsg    string
	}{
		{"bad request", httpx.BadRequest("nope"), http.StatusBadRequest, "BadRequest", "nope"},
		{"forbidden", httpx.Forbidden("Project not allowed to request", cause), http.StatusForbidden, "Forbidden", "Project not allowed to request"},
		{"not found", httpx.NotFound("Path not found: '/x'"), http.StatusNotFound, "NotFound", "Path not found: '/x'"},
		{"conflict", httpx.Conflict("taken", cause), http.StatusConflict, "Conflict", "taken"},
		{"wrapped", fmt.Errorf("handler: %w", httpx.Unauthorized("who")), http.StatusUnauthorized, "Unauthorized", "who"},
		{"plain error", cause, http.StatusInternalServerError, "InternalServerError", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpx.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			body := decodeError(t, rec)
			require.Equal(t, tt.wantStatus, body.Status)
			require.Equal(t, tt.wantName, body.Name)
			require.Equal(t, tt.wantMsg, body.Message)
			require.Empty(t, body.Stack)
		})
	}
}

func TestExposeStack(t *testing.T) {
	cause := errors.New("store: not found")
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, httpx.Forbidden("Project not allowed to request", cause))
	}), httpx.ExposeStack())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := decodeError(t, rec)
	require.Contains(t, body.Stack, "store: not found")
	require.Contains(t, body.Stack, "Forbidden: Project not allowed to request")
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.Created(rec, "/api/users/1", map[string]string{"id": "1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/users/1", rec.Header().Get("Location"))
	require.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}
