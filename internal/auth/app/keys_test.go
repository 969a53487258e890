package app

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testConfig(env, keyFile string) Config {
	return Config{
		Issuer:         "http://auth.test",
		KeyID:          "test-kid",
		PrivateKeyFile: keyFile,
		Env:            env,
	}
}

func TestInitAuthKeysDevKey(t *testing.T) {
	keys, err := InitAuthKeys(testConfig("dev", ""), slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, "test-kid", keys.Signer.KID())
	require.True(t, keys.KeySet.IsReady())

	token, err := keys.Signer.Sign(jwtx.NewClaims("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "http://auth.test", time.Minute, time.Now()))
	require.NoError(t, err)

	claims, err := keys.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", claims.Subject)
}

func TestInitAuthKeysFromFile(t *testing.T) {
	pemKey, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, pemKey, 0o600))

	keys, err := InitAuthKeys(testConfig("prod", path), slogx.Discard())
	require.NoError(t, err)

	dev, err := InitAuthKeys(testConfig("dev", ""), slogx.Discard())
	require.NoError(t, err)
	require.NotEqual(t, dev.Signer.PublicJWK().N, keys.Signer.PublicJWK().N)
}

func TestInitAuthKeysRejects(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0o600))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"prod without key file", testConfig("prod", ""), "AUTH_PRIVATE_KEY_FILE is required in prod"},
		{"missing file", testConfig("dev", filepath.Join(t.TempDir(), "nope.pem")), "read private key"},
		{"not a pem", testConfig("dev", garbage), "load signing key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitAuthKeys(tt.cfg, slogx.Discard())
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigAcceptsBareSubjectSession(t *testing.T) {
	cfg, err := loadConfig(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	keys, err := InitAuthKeys(cfg, slogx.Discard())
	require.NoError(t, err)

	key, err := cryptox.ParseRSAPrivateKey(devKey)
	require.NoError(t, err)
	header, err := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT", "kid": cfg.KeyID})
	require.NoError(t, err)
	signing := base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(`"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`))
	sig, err := jwt.SigningMethodRS256.Sign(signing, key)
	require.NoError(t, err)
	token := signing + "." + base64.RawURLEncoding.EncodeToString(sig)

	claims, err := keys.Verifier.Verify(token)
	require.NoError(t, err)
	require.True(t, claims.BareSubject)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", claims.Subject)

	var subject string
	gate := httpx.Authenticate(keys.Verifier, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = httpx.SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/oauth2/authorize", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", subject)
}
