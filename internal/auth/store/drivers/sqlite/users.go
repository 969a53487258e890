package sqlite

import (
	"context"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	return mapConstraint(r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GivenName:    u.GivenName,
		FamilyName:   u.FamilyName,
		Picture:      mapStringNull(u.Picture),
		PhoneNumber:  mapStringNull(u.PhoneNumber),
		Birthdate:    mapStringNull(u.Birthdate),
		Gender:       mapStringNull(u.Gender),
	}))
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	n, err := r.q.UpdateUser(ctx, gen.UpdateUserParams{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GivenName:    u.GivenName,
		FamilyName:   u.FamilyName,
		Picture:      mapStringNull(u.Picture),
		PhoneNumber:  mapStringNull(u.PhoneNumber),
		Birthdate:    mapStringNull(u.Birthdate),
		Gender:       mapStringNull(u.Gender),
		ID:           u.ID,
	})
	return mapAffected(n, mapConstraint(err))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return mapAffected(r.q.DeleteUser(ctx, id))
}
