package cryptox

import (
	"encoding/base64"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var hexCode = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool, 100)
	for range 100 {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Regexp(t, hexCode, code)
		require.NotContains(t, seen, code, "duplicate code generated")
		seen[code] = true
	}
}

func TestGenerateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, AccessTokenSize)

	other, err := GenerateAccessToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)
	require.Len(t, secret, SecretSize*2)
	require.Regexp(t, `^[0-9a-f]+$`, secret)
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}
