package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/aussiebroadwan/oauthd/pkg/idx"
)

// DefaultAccessTokenTTL is how long an exchanged access token stays valid.
const DefaultAccessTokenTTL = time.Hour

// LedgerService records authorization requests from code issuance to token
// exchange.
type LedgerService struct {
	Store    store.Store
	TokenTTL time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// IssuedToken is returned once, right after the exchange. Only the
// fingerprint of AccessToken is kept.
type IssuedToken struct {
	AccessToken string
	ExpiresIn   time.Duration
	ExpiredAt   time.Time
}

func (s *LedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *LedgerService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultAccessTokenTTL
}

// Create mints a one-time code for resourceOwner and clientID. A code
// collision surfaces as store.ErrAlreadyExists and is not retried.
func (s *LedgerService) Create(ctx context.Context, resourceOwner, clientID string, scope []string) (domain.AuthorizationRequest, error) {
	code, err := cryptox.GenerateCode()
	if err != nil {
		return domain.AuthorizationRequest{}, err
	}

	now := s.now()
	req := domain.AuthorizationRequest{
		ID:            idx.NewAt(now).String(),
		ResourceOwner: resourceOwner,
		ClientID:      clientID,
		Scope:         domain.NormalizeScope(scope),
		Code:          code,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.AuthorizationRequests().CreateAuthorizationRequest(ctx, req); err != nil {
		return domain.AuthorizationRequest{}, err
	}
	return req, nil
}

func (s *LedgerService) FindByClientIDAndCode(ctx context.Context, clientID, code string) (domain.AuthorizationRequest, error) {
	return s.Store.AuthorizationRequests().GetAuthorizationRequestByClientIDAndCode(ctx, clientID, code)
}

// Token exchanges req for a fresh access token. The write only succeeds if
// no token was set in the meantime, so of two concurrent exchanges exactly
// one wins and the other gets ErrAlreadyConsumed.
func (s *LedgerService) Token(ctx context.Context, req domain.AuthorizationRequest) (IssuedToken, error) {
	if req.Exchanged() {
		return IssuedToken{}, ErrAlreadyConsumed
	}

	token, err := cryptox.GenerateAccessToken()
	if err != nil {
		return IssuedToken{}, err
	}

	ttl := s.ttl()
	expiredAt := s.now().Add(ttl)

	err = s.Store.AuthorizationRequests().IssueToken(ctx, req.ID, cryptox.FingerprintToken(token), expiredAt)
	if errors.Is(err, store.ErrNotFound) {
		return IssuedToken{}, ErrAlreadyConsumed
	}
	if err != nil {
		return IssuedToken{}, fmt.Errorf("issue token: %w", err)
	}

	return IssuedToken{AccessToken: token, ExpiresIn: ttl, ExpiredAt: expiredAt}, nil
}

// FindByToken resolves an access token to its request. Unknown and expired
// tokens both yield store.ErrNotFound.
func (s *LedgerService) FindByToken(ctx context.Context, token string) (domain.AuthorizationRequest, error) {
	if token == "" {
		return domain.AuthorizationRequest{}, store.ErrNotFound
	}
	return s.Store.AuthorizationRequests().GetAuthorizationRequestByTokenHash(ctx, cryptox.FingerprintToken(token), s.now())
}
