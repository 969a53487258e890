package sqlite

import (
	"context"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite/gen"
)

type projectsRepo struct {
	q *gen.Queries
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row, err := r.q.GetProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	return mapProject(row), nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	return mapConstraint(r.q.CreateProject(ctx, gen.CreateProjectParams{
		ID:          p.ID,
		Name:        p.Name,
		SecretHash:  p.SecretHash,
		RedirectUrl: p.RedirectURL,
		Scope:       joinScope(p.Scope),
		CreatorID:   p.CreatorID,
	}))
}
