package service_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/service"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "http://auth.test"

type testEnv struct {
	store    store.Store
	vault    *cryptox.Vault
	keys     *jwtx.KeySet
	users    *service.UserService
	projects *service.ProjectService
	ledger   *service.LedgerService
	sessions *service.SessionService
	oauth2   *service.OAuth2Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerRS256FromKey("test-kid", key)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	vault := cryptox.NewVault("test-pepper")
	env := &testEnv{
		store:    st,
		vault:    vault,
		keys:     keys,
		users:    &service.UserService{Store: st, Vault: vault},
		projects: &service.ProjectService{Store: st, Vault: vault},
		ledger:   &service.LedgerService{Store: st},
		sessions: &service.SessionService{
			Store:    st,
			Vault:    vault,
			Signer:   signer,
			Verifier: jwtx.NewVerifierRS256(keys, jwtx.VerifyOptions{Issuer: testIssuer}),
			Issuer:   testIssuer,
		},
	}
	env.oauth2 = &service.OAuth2Service{
		Store:    st,
		Projects: env.projects,
		Ledger:   env.ledger,
		Sessions: env.sessions,
	}
	return env
}

func (e *testEnv) createUser(t *testing.T, email string) domain.User {
	t.Helper()

	u, err := e.users.Create(context.Background(), service.NewUser{
		Email:      email,
		Password:   "hunter22",
		GivenName:  "Jane",
		FamilyName: "Doe",
		Picture:    "https://example.com/jane.png",
		Birthdate:  "2000-09-07",
		Gender:     domain.GenderFemale,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) createProject(t *testing.T, owner string, scope ...string) service.CreatedProject {
	t.Helper()

	p, err := e.projects.Create(context.Background(), service.NewProject{
		Name:        "web-app",
		RedirectURL: "https://app.example/cb",
		Scope:       scope,
		CreatorID:   owner,
	})
	require.NoError(t, err)
	return p
}

func TestProjectServiceCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")

	created := env.createProject(t, owner.ID, domain.ScopeGivenName, domain.ScopeEmail, domain.ScopeGivenName)
	require.Len(t, created.Secret, 64)
	require.Equal(t, []string{domain.ScopeGivenName, domain.ScopeEmail}, created.Scope)
	require.NotContains(t, created.SecretHash, created.Secret)

	found, err := env.projects.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, owner.ID, found.CreatorID)
	require.True(t, env.projects.VerifySecret(found, created.Secret))
	require.False(t, env.projects.VerifySecret(found, "wrong"))
	require.False(t, env.projects.VerifySecret(found, ""))

	_, err = env.projects.Create(ctx, service.NewProject{
		Name:        "web-app",
		RedirectURL: "https://other.example/cb",
		Scope:       []string{domain.ScopeEmail},
		CreatorID:   owner.ID,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = env.projects.FindByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLedgerTokenExpiry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner.ID, domain.ScopeGivenName)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	env.ledger.Now = func() time.Time { return now }

	ar, err := env.ledger.Create(ctx, owner.ID, project.ID, []string{domain.ScopeGivenName})
	require.NoError(t, err)
	require.Regexp(t, `^[0-9a-f]{16}$`, ar.Code)

	issued, err := env.ledger.Token(ctx, ar)
	require.NoError(t, err)
	require.Equal(t, time.Hour, issued.ExpiresIn)
	require.Equal(t, now.Add(time.Hour), issued.ExpiredAt)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"fresh", now, nil},
		{"just before expiry", now.Add(time.Hour - time.Second), nil},
		{"at expiry", now.Add(time.Hour), store.ErrNotFound},
		{"after expiry", now.Add(2 * time.Hour), store.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.ledger.Now = func() time.Time { return tt.at }
			got, err := env.ledger.FindByToken(ctx, issued.AccessToken)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, ar.ID, got.ID)
		})
	}

	_, err = env.ledger.FindByToken(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLedgerTokenSingleUse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner.ID, domain.ScopeGivenName)

	ar, err := env.ledger.Create(ctx, owner.ID, project.ID, []string{domain.ScopeGivenName})
	require.NoError(t, err)

	_, err = env.ledger.Token(ctx, ar)
	require.NoError(t, err)

	// stale copy read before the first exchange
	_, err = env.ledger.Token(ctx, ar)
	require.ErrorIs(t, err, service.ErrAlreadyConsumed)

	fresh, err := env.ledger.FindByClientIDAndCode(ctx, project.ID, ar.Code)
	require.NoError(t, err)
	require.True(t, fresh.Exchanged())
	_, err = env.ledger.Token(ctx, fresh)
	require.ErrorIs(t, err, service.ErrAlreadyConsumed)
}

func TestSessionServiceLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "jane.doe@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"ok", "jane.doe@example.com", "hunter22", nil},
		{"wrong password", "jane.doe@example.com", "hunter23", service.ErrInvalidCredentials},
		{"unknown email", "john@example.com", "hunter22", service.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := env.sessions.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, user.ID, session.User.ID)

			claims, err := env.sessions.Verify(session.Token)
			require.NoError(t, err)
			require.Equal(t, user.ID, claims.Subject)
			require.Equal(t, user.Email, claims.Email)
			require.Equal(t, user.Birthdate, claims.Birthdate)
			require.Empty(t, claims.PhoneNumber)
		})
	}
}

func TestUserServiceUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.createUser(t, "jane.doe@example.com")
	other := env.createUser(t, "other@example.com")

	_, err := env.users.Update(ctx, other.ID, user.ID, service.UserPatch{GivenName: "Mallory"})
	require.ErrorIs(t, err, service.ErrNotPermitted)

	updated, err := env.users.Update(ctx, user.ID, user.ID, service.UserPatch{
		GivenName:   "Janet",
		PhoneNumber: "+33123456789",
		Password:    "new-password",
	})
	require.NoError(t, err)
	require.Equal(t, "Janet", updated.GivenName)
	require.Equal(t, "Doe", updated.FamilyName)
	require.Equal(t, "+33123456789", updated.PhoneNumber)

	_, err = env.sessions.Login(ctx, user.Email, "new-password")
	require.NoError(t, err)
	_, err = env.sessions.Login(ctx, user.Email, "hunter22")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = env.users.Update(ctx, user.ID, user.ID, service.UserPatch{Email: other.Email})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.ErrorIs(t, env.users.Delete(ctx, other.ID, user.ID), service.ErrNotPermitted)
	require.NoError(t, env.users.Delete(ctx, user.ID, user.ID))

	_, err = env.users.FindByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
