package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrReferenceMissing means a write pointed at a row that does not
	// exist, typically a user deleted while their session is still valid.
	ErrReferenceMissing = errors.New("store: referenced record missing")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose one sub-repository per aggregate. Keeping the repos behind
// methods stops callers from starting a transaction inside a transaction.
type Store interface {
	Users() Users
	Projects() Projects
	AuthorizationRequests() AuthorizationRequests

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, rolling back when fn errors and
	// committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used by login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser overwrites every mutable column and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	DeleteUser(ctx context.Context, id string) error
}

type Projects interface {
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// CreateProject inserts a new project. ErrAlreadyExists when the name or
	// redirect URL is already registered.
	CreateProject(ctx context.Context, p domain.Project) error
}

type AuthorizationRequests interface {
	// CreateAuthorizationRequest stores a freshly minted code. A duplicate
	// (client_id, code) pair yields ErrAlreadyExists.
	CreateAuthorizationRequest(ctx context.Context, r domain.AuthorizationRequest) error

	GetAuthorizationRequestByClientIDAndCode(ctx context.Context, clientID, code string) (domain.AuthorizationRequest, error)

	// GetAuthorizationRequestByTokenHash only returns requests whose token
	// expires after now.
	GetAuthorizationRequestByTokenHash(ctx context.Context, tokenHash string, now time.Time) (domain.AuthorizationRequest, error)

	// IssueToken sets token_hash and expired_at on a request that has not
	// been exchanged yet. ErrNotFound when the request is missing or already
	// carries a token.
	IssueToken(ctx context.Context, id, tokenHash string, expiredAt time.Time) error
}
