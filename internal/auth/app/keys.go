package app

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
)

// devKey is a fixed key pair so development tokens survive restarts.
// It is public and must never sign anything outside dev or staging.
//
//go:embed devkey.pem
var devKey []byte

// AuthKeys bundles the signing key with the key set and verifier built on it.
type AuthKeys struct {
	Signer   *jwtx.RS256Signer
	KeySet   *jwtx.KeySet
	Verifier *jwtx.RS256Verifier
}

// InitAuthKeys loads the RS256 signing key named by the config. Without a
// key file the embedded development key is used, which prod refuses.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*AuthKeys, error) {
	pemKey, err := readSigningKey(cfg, logger)
	if err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerRS256(cfg.KeyID, pemKey)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("register signing key: %w", err)
	}

	verifier := jwtx.NewVerifierRS256(keys, jwtx.VerifyOptions{
		Issuer:           cfg.Issuer,
		AllowBareSubject: cfg.AllowBareSubject,
	})
	if cfg.AllowBareSubject {
		logger.Info("bare subject session tokens are accepted", "env_var", "AUTH_ALLOW_BARE_SUBJECT")
	}

	logger.Info("signing key loaded", "kid", signer.KID())
	return &AuthKeys{Signer: signer, KeySet: keys, Verifier: verifier}, nil
}

func readSigningKey(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.PrivateKeyFile != "" {
		b, err := os.ReadFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}
		return b, nil
	}

	if cfg.Env == "prod" {
		return nil, errors.New("AUTH_PRIVATE_KEY_FILE is required in prod")
	}
	logger.Warn("using the embedded development signing key", "env", cfg.Env)
	return devKey, nil
}
