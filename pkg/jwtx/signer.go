package jwtx

import (
	"crypto/rsa"
	"errors"

	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can sign our tokens.
type Signer interface {
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// RS256Signer implements Signer using RSA SHA-256.
type RS256Signer struct {
	kid string
	key *rsa.PrivateKey
}

// NewSignerRS256 creates an RS256 signer from PEM bytes. Both PKCS1 and
// PKCS8 encodings are accepted.
func NewSignerRS256(kid string, pemKey []byte) (*RS256Signer, error) {
	key, err := cryptox.ParseRSAPrivateKey(pemKey)
	if err != nil {
		return nil, err
	}
	return NewSignerRS256FromKey(kid, key)
}

func NewSignerRS256FromKey(kid string, key *rsa.PrivateKey) (*RS256Signer, error) {
	if key == nil {
		return nil, errors.New("jwtx: nil RSA key")
	}
	if kid == "" {
		return nil, errors.New("jwtx: empty kid")
	}
	return &RS256Signer{kid: kid, key: key}, nil
}

func (s *RS256Signer) KID() string { return s.kid }

// Sign turns claims into a signed compact JWT carrying the kid header.
func (s *RS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the JWK published so others can verify our tokens.
func (s *RS256Signer) PublicJWK() JWK {
	return NewRSAJWK(s.kid, "sig", jwt.SigningMethodRS256.Alg(), &s.key.PublicKey)
}
