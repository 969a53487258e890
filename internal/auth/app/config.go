package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment at startup.
type Config struct {
	Issuer           string `env:"AUTH_ISSUER" envDefault:"oauthd"`
	DatabaseFile     string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	PepperFile       string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`
	PrivateKeyFile   string `env:"AUTH_PRIVATE_KEY_FILE"` // PEM, PKCS1 or PKCS8. Unset uses the dev key outside prod.
	KeyID            string `env:"AUTH_KEY_ID" envDefault:"oauthd-1"`
	AllowBareSubject bool   `env:"AUTH_ALLOW_BARE_SUBJECT" envDefault:"true"` // sessions whose payload is only the subject id

	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`

	// AccessTokenTTL is also the expires_in of token responses. Clients are
	// documented to receive 3600, so anything but 1h departs from that
	// contract.
	AccessTokenTTL time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"1h"`

	Env                 string        `env:"ENV" envDefault:"dev"` // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

var environments = []string{"dev", "staging", "prod"}

// LoadConfig parses the process environment and validates the result.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	if !slices.Contains(environments, c.Env) {
		errs = append(errs, fmt.Errorf("ENV must be one of %v, got %q", environments, c.Env))
	}
	if c.Env == "prod" && c.PrivateKeyFile == "" {
		errs = append(errs, errors.New("AUTH_PRIVATE_KEY_FILE is required in prod"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.KeyID == "" {
		errs = append(errs, errors.New("AUTH_KEY_ID must not be empty"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("AUTH_SESSION_TTL must be positive"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_TTL must be positive"))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExposeStack reports whether error bodies may carry the cause chain.
func (c Config) ExposeStack() bool { return c.Env == "dev" }
