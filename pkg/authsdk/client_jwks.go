package authsdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
)

// GetJWKS retrieves the JSON Web Key Set for token verification.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	var jwks JWKSResponse
	if err := c.doJSON(ctx, http.MethodGet, "/.well-known/jwks.json", nil, &jwks, "", http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}

// NewVerifier fetches the JWKS and returns a verifier for identity and
// session tokens issued by issuer.
func (c *SDKClient) NewVerifier(ctx context.Context, issuer string) (jwtx.Verifier, error) {
	jwks, err := c.GetJWKS(ctx)
	if err != nil {
		return nil, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.ResetFromJWKS(jwtx.JWKS(*jwks)); err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	return jwtx.NewVerifierRS256(keys, jwtx.VerifyOptions{Issuer: issuer}), nil
}
