package service_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func authorizeCode(t *testing.T, env *testEnv, owner, clientID string, scope ...string) string {
	t.Helper()

	redirect, err := env.oauth2.Authorize(context.Background(), service.AuthorizeRequest{
		ResourceOwner: owner,
		ClientID:      clientID,
		RedirectURI:   "https://app.example/cb",
		Scope:         scope,
	})
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	require.Equal(t, "app.example", u.Host)
	require.Equal(t, "/cb", u.Path)
	return u.Query().Get("code")
}

func TestOAuth2Authorize(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner.ID, domain.ScopeGivenName, domain.ScopeEmail)

	code := authorizeCode(t, env, owner.ID, project.ID, domain.ScopeGivenName)
	require.Regexp(t, `^[0-9a-f]{16}$`, code)

	tests := []struct {
		name     string
		clientID string
		redirect string
		scope    []string
	}{
		{"unknown client", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "https://app.example/cb", []string{domain.ScopeGivenName}},
		{"trailing slash", project.ID, "https://app.example/cb/", []string{domain.ScopeGivenName}},
		{"scope outside declaration", project.ID, "https://app.example/cb", []string{domain.ScopeGivenName, domain.ScopeGender}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.oauth2.Authorize(ctx, service.AuthorizeRequest{
				ResourceOwner: owner.ID,
				ClientID:      tt.clientID,
				RedirectURI:   tt.redirect,
				Scope:         tt.scope,
			})
			require.ErrorIs(t, err, service.ErrForbidden)
		})
	}
}

func TestOAuth2TokenAndUserInfo(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner.ID, domain.ScopeGivenName, domain.ScopeEmail)

	code := authorizeCode(t, env, owner.ID, project.ID, domain.ScopeGivenName)
	good := service.TokenRequest{
		ClientID:     project.ID,
		ClientSecret: project.Secret,
		Code:         code,
		RedirectURI:  "https://app.example/cb",
	}

	t.Run("rejections leave the code usable", func(t *testing.T) {
		bad := []func(r *service.TokenRequest){
			func(r *service.TokenRequest) { r.ClientSecret = "wrong" },
			func(r *service.TokenRequest) { r.Code = "ffffffffffffffff" },
			func(r *service.TokenRequest) { r.ClientID = "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV" },
			func(r *service.TokenRequest) { r.RedirectURI = "https://evil.example/cb" },
		}
		for _, mutate := range bad {
			req := good
			mutate(&req)
			_, err := env.oauth2.Token(ctx, req)
			require.ErrorIs(t, err, service.ErrForbidden)
		}
	})

	resp, err := env.oauth2.Token(ctx, good)
	require.NoError(t, err)
	require.Equal(t, "Bearer", resp.TokenType)
	require.EqualValues(t, 3600, resp.ExpiresIn)
	require.NotEmpty(t, resp.AccessToken)
	require.Empty(t, resp.IDToken)

	_, err = env.oauth2.Token(ctx, good)
	require.ErrorIs(t, err, service.ErrForbidden)

	info, err := env.oauth2.UserInfo(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"sub":        owner.ID,
		"given_name": owner.GivenName,
	}, info)

	_, err = env.oauth2.UserInfo(ctx, "unknown-token")
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestOAuth2TokenIdentityToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner.ID, domain.ScopeOpenID, domain.ScopeEmail, domain.ScopeFamilyName)

	code := authorizeCode(t, env, owner.ID, project.ID, domain.ScopeOpenID, domain.ScopeEmail)
	resp, err := env.oauth2.Token(ctx, service.TokenRequest{
		ClientID:     project.ID,
		ClientSecret: project.Secret,
		Code:         code,
		RedirectURI:  "https://app.example/cb",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.IDToken)

	claims, err := env.sessions.Verify(resp.IDToken)
	require.NoError(t, err)
	require.Equal(t, owner.ID, claims.Subject)
	require.Equal(t, map[string]any{"email": owner.Email}, claims.Profile())

	info, err := env.oauth2.UserInfo(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.NotContains(t, info, domain.ScopeOpenID)
	require.Equal(t, owner.Email, info["email"])
}

func TestOAuth2TokenConcurrentExchange(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner.ID, domain.ScopeGivenName)

	code := authorizeCode(t, env, owner.ID, project.ID, domain.ScopeGivenName)
	req := service.TokenRequest{
		ClientID:     project.ID,
		ClientSecret: project.Secret,
		Code:         code,
		RedirectURI:  "https://app.example/cb",
	}

	const workers = 4
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		forbidden atomic.Int32
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.oauth2.Token(ctx, req)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, service.ErrForbidden):
				forbidden.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	require.Equal(t, int32(workers-1), forbidden.Load())
}
