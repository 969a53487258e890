package jwtx

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// RS256Verifier validates JWTs signed using RS256.
type RS256Verifier struct {
	keys *KeySet
	opts VerifyOptions
}

// NewVerifierRS256 creates a verifier using a KeySet of RSA public keys.
func NewVerifierRS256(keys *KeySet, opts VerifyOptions) *RS256Verifier {
	return &RS256Verifier{keys: keys, opts: opts}
}

func (v *RS256Verifier) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.opts.Issuer))
	}
	if v.opts.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(v.opts.Now))
	}
	return opts
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *RS256Verifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	_, err := jwt.NewParser(v.parserOptions()...).ParseWithClaims(tokenStr, &claims, v.keyFunc)
	if err == nil {
		return claims, nil
	}

	switch {
	case errors.Is(err, ErrUnknownKID):
		return Claims{}, ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenMalformed):
		if v.opts.AllowBareSubject {
			if c, ok := v.verifyBareSubject(tokenStr); ok {
				return c, nil
			}
		}
		return Claims{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return Claims{}, ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return Claims{}, ErrIssuer
	default:
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}

func (v *RS256Verifier) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	return v.lookup(kid)
}

func (v *RS256Verifier) lookup(kid string) (*rsa.PublicKey, error) {
	if kid == "" {
		return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
	}
	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	}
	return pub, nil
}

// verifyBareSubject handles tokens whose payload is a JSON string rather
// than a claims object. The signature still has to check out.
func (v *RS256Verifier) verifyBareSubject(tokenStr string) (Claims, bool) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return Claims{}, false
	}

	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	if !decodeSegment(parts[0], &header) || header.Alg != jwt.SigningMethodRS256.Alg() {
		return Claims{}, false
	}

	var subject string
	if !decodeSegment(parts[1], &subject) || subject == "" {
		return Claims{}, false
	}

	pub, err := v.lookup(header.Kid)
	if err != nil {
		return Claims{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, false
	}
	if err := jwt.SigningMethodRS256.Verify(parts[0]+"."+parts[1], sig, pub); err != nil {
		return Claims{}, false
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		BareSubject:      true,
	}, true
}

func decodeSegment(seg string, dst any) bool {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
