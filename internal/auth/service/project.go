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
	"github.com/aussiebroadwan/oauthd/pkg/slogx"
)

// ProjectService is the client registry.
type ProjectService struct {
	Store store.Store
	Vault *cryptox.Vault
}

// NewProject holds the caller-supplied fields of a project registration.
type NewProject struct {
	Name        string
	RedirectURL string
	Scope       []string
	CreatorID   string
}

// CreatedProject carries the plaintext secret, which is only ever shown at
// creation time.
type CreatedProject struct {
	domain.Project
	Secret string
}

// Create registers a project owned by in.CreatorID and mints its secret.
// A duplicate name or redirect URL yields store.ErrAlreadyExists.
func (s *ProjectService) Create(ctx context.Context, in NewProject) (CreatedProject, error) {
	l := slogx.FromContext(ctx)

	secret, err := cryptox.GenerateSecret()
	if err != nil {
		return CreatedProject{}, err
	}
	secretHash, err := s.Vault.Hash(secret)
	if err != nil {
		return CreatedProject{}, fmt.Errorf("hash project secret: %w", err)
	}

	now := time.Now().UTC()
	p := domain.Project{
		ID:          idx.New().String(),
		Name:        in.Name,
		SecretHash:  secretHash,
		RedirectURL: in.RedirectURL,
		Scope:       domain.NormalizeScope(in.Scope),
		CreatorID:   in.CreatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.Store.Projects().CreateProject(ctx, p)
	if errors.Is(err, store.ErrReferenceMissing) {
		return CreatedProject{}, fmt.Errorf("%w: %w", ErrUnknownSubject, err)
	}
	if err != nil {
		return CreatedProject{}, err
	}

	l.Info("project created", "project_id", p.ID, "creator_id", p.CreatorID)
	return CreatedProject{Project: p, Secret: secret}, nil
}

// FindByID returns store.ErrNotFound for unknown projects.
func (s *ProjectService) FindByID(ctx context.Context, id string) (domain.Project, error) {
	return s.Store.Projects().GetProjectByID(ctx, id)
}

// VerifySecret checks a presented client secret against the stored hash.
func (s *ProjectService) VerifySecret(p domain.Project, candidate string) bool {
	if candidate == "" {
		return false
	}
	return s.Vault.Verify(candidate, p.SecretHash)
}
