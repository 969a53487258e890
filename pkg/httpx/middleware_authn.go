package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

const (
	MsgCheckAuthenticate = "Check 'WWW-Authenticate' header"

	bearerMissingToken  = "Bearer missing_token"
	bearerUnknownScheme = "Bearer unknown_scheme"
	bearerInvalidToken  = "Bearer invalid_token"
)

// Authenticate guards a route with a bearer credential. With verifySignature
// the token must verify against v and the subject lands in the context.
// Without it the raw credential is passed through unverified, which is how
// opaque access tokens reach userinfo.
func Authenticate(v jwtx.Verifier, verifySignature bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" {
				writeBearerError(w, r, bearerMissingToken)
				return
			}

			scheme, credential, _ := strings.Cut(authz, " ")
			credential = strings.TrimSpace(credential)
			if !strings.EqualFold(scheme, "Bearer") {
				writeBearerError(w, r, bearerUnknownScheme)
				return
			}
			if credential == "" {
				writeBearerError(w, r, bearerMissingToken)
				return
			}

			if !verifySignature {
				next.ServeHTTP(w, r.WithContext(WithToken(ctx, credential)))
				return
			}

			claims, err := v.Verify(credential)
			if err != nil {
				slogx.FromContext(ctx).Warn("bearer verification failed", "err", err)
				writeBearerError(w, r, bearerInvalidToken+": "+jwtx.Reason(err))
				return
			}
			if claims.BareSubject {
				slogx.FromContext(ctx).Warn("accepted bare subject token", "sub", claims.Subject)
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(ctx, claims.Subject)))
		})
	}
}

// WriteInvalidToken rejects a credential that verified but can no longer be
// honoured, with the same challenge the gate uses.
func WriteInvalidToken(w http.ResponseWriter, r *http.Request, reason string) {
	writeBearerError(w, r, bearerInvalidToken+": "+reason)
}

func writeBearerError(w http.ResponseWriter, r *http.Request, challenge string) {
	w.Header().Set("WWW-Authenticate", challenge)
	WriteError(w, r, Unauthorized(MsgCheckAuthenticate))
}
