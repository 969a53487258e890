package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Sizes in bytes before encoding.
const (
	CodeSize        = 8
	AccessTokenSize = 64
	SecretSize      = 32
)

func randomBytes(size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: failed to read random bytes: %w", err)
	}
	return buf, nil
}

// GenerateCode returns a fresh authorization code: 16 lowercase hex chars.
func GenerateCode() (string, error) {
	buf, err := randomBytes(CodeSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateAccessToken returns an opaque bearer token, standard base64.
func GenerateAccessToken() (string, error) {
	buf, err := randomBytes(AccessTokenSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// GenerateSecret returns a project client secret, hex encoded.
func GenerateSecret() (string, error) {
	buf, err := randomBytes(SecretSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Tokens are stored by fingerprint so a database dump does not leak usable
// bearer credentials.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
