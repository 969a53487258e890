package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/cryptox"
	"github.com/aussiebroadwan/oauthd/pkg/idx"
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
	"github.com/jinzhu/copier"
)

type UserService struct {
	Store store.Store
	Vault *cryptox.Vault
}

// NewUser is the registration payload. Password is plaintext until Create
// hashes it.
type NewUser struct {
	Email       string
	Password    string
	GivenName   string
	FamilyName  string
	Picture     string
	PhoneNumber string
	Birthdate   string
	Gender      string
}

// UserPatch holds the fields a user may change. Empty fields are left
// untouched.
type UserPatch struct {
	Email       string
	Password    string
	GivenName   string
	FamilyName  string
	Picture     string
	PhoneNumber string
	Birthdate   string
	Gender      string
}

// Create hashes the password and stores the user. A taken email yields
// store.ErrAlreadyExists.
func (s *UserService) Create(ctx context.Context, in NewUser) (domain.User, error) {
	hash, err := s.Vault.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := copier.Copy(&u, &in); err != nil {
		return domain.User{}, fmt.Errorf("copy user: %w", err)
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", u.ID)
	return u, nil
}

// FindByID returns store.ErrNotFound for unknown users.
func (s *UserService) FindByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

// Update applies patch to the user identified by id on behalf of actor.
// Users may only change themselves.
func (s *UserService) Update(ctx context.Context, actor, id string, patch UserPatch) (domain.User, error) {
	if actor != id {
		return domain.User{}, ErrNotPermitted
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if err := copier.CopyWithOption(&u, &patch, copier.Option{IgnoreEmpty: true}); err != nil {
			return fmt.Errorf("merge user patch: %w", err)
		}
		if patch.Password != "" {
			if u.PasswordHash, err = s.Vault.Hash(patch.Password); err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
		}
		u.UpdatedAt = time.Now().UTC()

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated", "user_id", id)
	return updated, nil
}

// Delete removes the user identified by id on behalf of actor. Projects and
// authorization requests owned by the user go with it.
func (s *UserService) Delete(ctx context.Context, actor, id string) error {
	if actor != id {
		return ErrNotPermitted
	}
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}
