package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
	"github.com/aussiebroadwan/oauthd/internal/auth/store/drivers/sqlite/gen"
)

type authorizationRequestsRepo struct {
	q *gen.Queries
}

func (r *authorizationRequestsRepo) CreateAuthorizationRequest(ctx context.Context, req domain.AuthorizationRequest) error {
	return mapConstraint(r.q.CreateAuthorizationRequest(ctx, gen.CreateAuthorizationRequestParams{
		ID:            req.ID,
		ResourceOwner: req.ResourceOwner,
		ClientID:      req.ClientID,
		Scope:         joinScope(req.Scope),
		Code:          req.Code,
	}))
}

func (r *authorizationRequestsRepo) GetAuthorizationRequestByClientIDAndCode(
	ctx context.Context,
	clientID, code string,
) (domain.AuthorizationRequest, error) {
	row, err := r.q.GetAuthorizationRequestByClientIDAndCode(ctx, gen.GetAuthorizationRequestByClientIDAndCodeParams{
		ClientID: clientID,
		Code:     code,
	})
	if err != nil {
		return domain.AuthorizationRequest{}, mapNotFound(err)
	}
	return mapAuthorizationRequest(row), nil
}

func (r *authorizationRequestsRepo) GetAuthorizationRequestByTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (domain.AuthorizationRequest, error) {
	row, err := r.q.GetAuthorizationRequestByTokenHash(ctx, gen.GetAuthorizationRequestByTokenHashParams{
		TokenHash: mapStringNull(tokenHash),
		ExpiredAt: mapUnixNull(now),
	})
	if err != nil {
		return domain.AuthorizationRequest{}, mapNotFound(err)
	}
	return mapAuthorizationRequest(row), nil
}

// IssueToken only touches rows whose token_hash is still NULL, so two
// exchanges racing on the same code cannot both succeed.
func (r *authorizationRequestsRepo) IssueToken(ctx context.Context, id, tokenHash string, expiredAt time.Time) error {
	return mapAffected(r.q.IssueAuthorizationRequestToken(ctx, gen.IssueAuthorizationRequestTokenParams{
		TokenHash: mapStringNull(tokenHash),
		ExpiredAt: mapUnixNull(expiredAt),
		ID:        id,
	}))
}
