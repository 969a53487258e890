package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

// OAuth2Service drives the authorization-code flow: authorize issues a
// code, token exchanges it once, userinfo reads the granted profile.
type OAuth2Service struct {
	Store    store.Store
	Projects *ProjectService
	Ledger   *LedgerService
	Sessions *SessionService
}

type AuthorizeRequest struct {
	ResourceOwner string
	ClientID      string
	RedirectURI   string
	Scope         []string
}

type TokenRequest struct {
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	IDToken     string `json:"id_token,omitempty"`
}

// Authorize validates the request against the project and returns the
// redirect target carrying a fresh code.
func (s *OAuth2Service) Authorize(ctx context.Context, req AuthorizeRequest) (string, error) {
	l := slogx.FromContext(ctx).With("client_id", req.ClientID)

	project, err := s.findProject(ctx, req.ClientID)
	if err != nil {
		return "", err
	}
	if !project.AllowRequest(req.RedirectURI, req.Scope) {
		l.Info("authorize rejected", "redirect_uri", req.RedirectURI, "scope", req.Scope)
		return "", ErrForbidden
	}

	redirect, err := url.Parse(req.RedirectURI)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrForbidden, err)
	}

	ar, err := s.Ledger.Create(ctx, req.ResourceOwner, project.ID, req.Scope)
	if errors.Is(err, store.ErrReferenceMissing) {
		l.Info("authorize rejected: resource owner gone", "user_id", req.ResourceOwner)
		return "", fmt.Errorf("%w: %w", ErrUnknownSubject, err)
	}
	if err != nil {
		return "", err
	}

	q := redirect.Query()
	q.Set("code", ar.Code)
	redirect.RawQuery = q.Encode()

	l.Info("authorization code issued", "request_id", ar.ID, "user_id", req.ResourceOwner)
	return redirect.String(), nil
}

// Token exchanges a code for an access token. The client secret is checked
// before the code is even looked up.
func (s *OAuth2Service) Token(ctx context.Context, req TokenRequest) (TokenResponse, error) {
	l := slogx.FromContext(ctx).With("client_id", req.ClientID)

	project, err := s.findProject(ctx, req.ClientID)
	if err != nil {
		return TokenResponse{}, err
	}
	if !s.Projects.VerifySecret(project, req.ClientSecret) {
		l.Info("token rejected: client secret mismatch")
		return TokenResponse{}, ErrForbidden
	}
	if req.RedirectURI != project.RedirectURL {
		l.Info("token rejected: redirect_uri mismatch")
		return TokenResponse{}, ErrForbidden
	}

	ar, err := s.Ledger.FindByClientIDAndCode(ctx, project.ID, req.Code)
	if errors.Is(err, store.ErrNotFound) {
		l.Info("token rejected: unknown code")
		return TokenResponse{}, ErrForbidden
	}
	if err != nil {
		return TokenResponse{}, err
	}

	issued, err := s.Ledger.Token(ctx, ar)
	if errors.Is(err, ErrAlreadyConsumed) {
		l.Warn("token rejected: code already exchanged", "request_id", ar.ID)
		return TokenResponse{}, fmt.Errorf("%w: %w", ErrForbidden, err)
	}
	if err != nil {
		return TokenResponse{}, err
	}

	resp := TokenResponse{
		AccessToken: issued.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(issued.ExpiresIn / time.Second),
	}

	if domain.HasOpenID(ar.Scope) {
		user, err := s.Store.Users().GetUserByID(ctx, ar.ResourceOwner)
		if err != nil {
			return TokenResponse{}, fmt.Errorf("load resource owner: %w", err)
		}
		resp.IDToken, err = s.Sessions.IdentityToken(ctx, user, ar.Scope)
		if err != nil {
			return TokenResponse{}, fmt.Errorf("sign id_token: %w", err)
		}
	}

	l.Info("access token issued", "request_id", ar.ID, "id_token", resp.IDToken != "")
	return resp, nil
}

// UserInfo returns the profile granted to accessToken, plus the subject.
func (s *OAuth2Service) UserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	ar, err := s.Ledger.FindByToken(ctx, accessToken)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, ar.ResourceOwner)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	profile := user.Profile(domain.WithoutOpenID(ar.Scope))
	profile["sub"] = user.ID
	return profile, nil
}

func (s *OAuth2Service) findProject(ctx context.Context, clientID string) (domain.Project, error) {
	project, err := s.Projects.FindByID(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Info("unknown client", "client_id", clientID)
		return domain.Project{}, ErrForbidden
	}
	return project, err
}
