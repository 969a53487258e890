package sqlite_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/oauthd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st store.Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "hash",
		GivenName:    "Jane",
		FamilyName:   "Doe",
		Picture:      "https://example.com/jane.png",
		Birthdate:    "2000-09-07",
		Gender:       domain.GenderFemale,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedProject(t *testing.T, st store.Store, creator, name, redirect string) domain.Project {
	t.Helper()

	p := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		SecretHash:  "secret-hash",
		RedirectURL: redirect,
		Scope:       []string{domain.ScopeGivenName, domain.ScopeEmail},
		CreatorID:   creator,
	}
	require.NoError(t, st.Projects().CreateProject(context.Background(), p))
	return p
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.ApplyMigrations())

	version, dirty, err := st.SchemaVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	user := seedUser(t, st, "jane.doe@example.com")

	t.Run("get by id and email", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, got.Email)
		require.Empty(t, got.PhoneNumber)
		require.False(t, got.CreatedAt.IsZero())

		got, err = st.Users().GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("optional attributes unset", func(t *testing.T) {
		minimal := domain.User{
			ID:           idx.New().String(),
			Email:        "minimal@example.com",
			PasswordHash: "hash",
			GivenName:    "Min",
			FamilyName:   "Imal",
		}
		require.NoError(t, st.Users().CreateUser(ctx, minimal))

		got, err := st.Users().GetUserByID(ctx, minimal.ID)
		require.NoError(t, err)
		require.Empty(t, got.Picture)
		require.Empty(t, got.Birthdate)
		require.Empty(t, got.Gender)

		got.Gender = domain.GenderMale
		require.NoError(t, st.Users().UpdateUser(ctx, got))
		got, err = st.Users().GetUserByID(ctx, minimal.ID)
		require.NoError(t, err)
		require.Equal(t, domain.GenderMale, got.Gender)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := user
		dup.ID = idx.New().String()
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		updated := user
		updated.GivenName = "Janet"
		updated.PhoneNumber = "+33123456789"
		require.NoError(t, st.Users().UpdateUser(ctx, updated))

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "Janet", got.GivenName)
		require.Equal(t, "+33123456789", got.PhoneNumber)
	})

	t.Run("update missing", func(t *testing.T) {
		missing := user
		missing.ID = idx.New().String()
		missing.Email = "other@example.com"
		require.ErrorIs(t, st.Users().UpdateUser(ctx, missing), store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteUser(ctx, user.ID))
		_, err := st.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, st.Users().DeleteUser(ctx, user.ID), store.ErrNotFound)
	})
}

func TestProjectsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	creator := seedUser(t, st, "owner@example.com")
	project := seedProject(t, st, creator.ID, "web-app", "https://app.example/cb")

	got, err := st.Projects().GetProjectByID(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, project.RedirectURL, got.RedirectURL)
	require.Equal(t, project.Scope, got.Scope)
	require.Equal(t, creator.ID, got.CreatorID)

	_, err = st.Projects().GetProjectByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	tests := []struct {
		name     string
		project  string
		redirect string
	}{
		{"duplicate name", "web-app", "https://other.example/cb"},
		{"duplicate redirect", "other-app", "https://app.example/cb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dup := project
			dup.ID = idx.New().String()
			dup.Name = tt.project
			dup.RedirectURL = tt.redirect
			require.ErrorIs(t, st.Projects().CreateProject(ctx, dup), store.ErrAlreadyExists)
		})
	}
}

func TestAuthorizationRequestsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	project := seedProject(t, st, owner.ID, "web-app", "https://app.example/cb")

	req := domain.AuthorizationRequest{
		ID:            idx.New().String(),
		ResourceOwner: owner.ID,
		ClientID:      project.ID,
		Scope:         []string{domain.ScopeGivenName},
		Code:          "0123456789abcdef",
	}
	require.NoError(t, st.AuthorizationRequests().CreateAuthorizationRequest(ctx, req))

	t.Run("duplicate client and code", func(t *testing.T) {
		dup := req
		dup.ID = idx.New().String()
		err := st.AuthorizationRequests().CreateAuthorizationRequest(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing resource owner", func(t *testing.T) {
		orphan := req
		orphan.ID = idx.New().String()
		orphan.ResourceOwner = idx.New().String()
		orphan.Code = "fedcba9876543210"
		err := st.AuthorizationRequests().CreateAuthorizationRequest(ctx, orphan)
		require.ErrorIs(t, err, store.ErrReferenceMissing)
	})

	t.Run("lookup by client and code", func(t *testing.T) {
		got, err := st.AuthorizationRequests().GetAuthorizationRequestByClientIDAndCode(ctx, project.ID, req.Code)
		require.NoError(t, err)
		require.Equal(t, req.ID, got.ID)
		require.False(t, got.Exchanged())
		require.Nil(t, got.ExpiredAt)

		_, err = st.AuthorizationRequests().GetAuthorizationRequestByClientIDAndCode(ctx, project.ID, "ffffffffffffffff")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	now := time.Now()
	expiry := now.Add(time.Hour)

	t.Run("issue token once", func(t *testing.T) {
		require.NoError(t, st.AuthorizationRequests().IssueToken(ctx, req.ID, "token-hash", expiry))
		require.ErrorIs(t, st.AuthorizationRequests().IssueToken(ctx, req.ID, "other-hash", expiry), store.ErrNotFound)
	})

	t.Run("lookup by token respects expiry", func(t *testing.T) {
		got, err := st.AuthorizationRequests().GetAuthorizationRequestByTokenHash(ctx, "token-hash", now)
		require.NoError(t, err)
		require.Equal(t, req.ID, got.ID)
		require.True(t, got.Exchanged())
		require.NotNil(t, got.ExpiredAt)
		require.Equal(t, expiry.Unix(), got.ExpiredAt.Unix())

		_, err = st.AuthorizationRequests().GetAuthorizationRequestByTokenHash(ctx, "token-hash", expiry)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.AuthorizationRequests().GetAuthorizationRequestByTokenHash(ctx, "unknown", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestIssueTokenSingleWinnerUnderContention(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	owner := seedUser(t, st, "owner@example.com")
	project := seedProject(t, st, owner.ID, "web-app", "https://app.example/cb")

	req := domain.AuthorizationRequest{
		ID:            idx.New().String(),
		ResourceOwner: owner.ID,
		ClientID:      project.ID,
		Scope:         []string{domain.ScopeGivenName},
		Code:          "00000000deadbeef",
	}
	require.NoError(t, st.AuthorizationRequests().CreateAuthorizationRequest(ctx, req))

	const workers = 8
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hash := idx.New().String()
			if err := st.AuthorizationRequests().IssueToken(ctx, req.ID, hash, time.Now().Add(time.Hour)); err == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	user := domain.User{
		ID:           idx.New().String(),
		Email:        "tx@example.com",
		PasswordHash: "hash",
		GivenName:    "T",
		FamilyName:   "X",
		Picture:      "https://example.com/t.png",
		Birthdate:    "1990-01-01",
		Gender:       domain.GenderMale,
	}

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, user))
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
