package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

// SessionService signs and verifies session and identity tokens.
type SessionService struct {
	Store    store.Store
	Vault    *cryptox.Vault
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string

	SessionTTL  time.Duration
	IdentityTTL time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// Session is the result of a successful login.
type Session struct {
	User  domain.User
	Token string
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Login checks email and password and signs a session token carrying the
// user's full profile. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if !s.Vault.Verify(password, user.PasswordHash) {
		l.Info("login rejected", "user_id", user.ID)
		return Session{}, ErrInvalidCredentials
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	token, err := s.sign(user, domain.Scopes, ttl)
	if err != nil {
		return Session{}, err
	}

	l.Info("user logged in", "user_id", user.ID)
	return Session{User: user, Token: token}, nil
}

// IdentityToken signs an id_token for user restricted to scope. No password
// check happens here; the caller has already authenticated the user.
func (s *SessionService) IdentityToken(_ context.Context, user domain.User, scope []string) (string, error) {
	ttl := s.IdentityTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultIdentityTTL
	}
	return s.sign(user, domain.WithoutOpenID(scope), ttl)
}

// Verify checks a session token and returns its claims.
func (s *SessionService) Verify(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}

func (s *SessionService) sign(user domain.User, scope []string, ttl time.Duration) (string, error) {
	claims := jwtx.NewClaims(user.ID, s.Issuer, ttl, s.now()).WithProfile(user.Profile(scope))
	return s.Signer.Sign(claims)
}
