package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
)

// JWKSHandler publishes the public half of the session signing key so
// relying parties can verify id_tokens. Unlike every other response it may
// be cached.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify session and identity tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	authsdk.JWKSResponse	"The JSON Web Key Set"
//	@Header			200	{string}	Cache-Control			"public, max-age=300"
//	@Router			/.well-known/jwks.json [get]
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(authsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
