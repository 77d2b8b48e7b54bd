package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/identity/domain"
)

// Repository and collaborator errors
var (
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrUsernameTaken is returned when a username collides case-insensitively.
	ErrUsernameTaken = errors.New("username already taken")

	ErrDisplayNameTaken = errors.New("display name already in use")

	// ErrPasswordMismatch is returned by PasswordHasher.Compare.
	ErrPasswordMismatch = errors.New("password does not match")
)

// IdentityRepository defines the interface for identity persistence
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error

	// FindByUsername matches case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)

	UpdateRoles(ctx context.Context, username string, roles authz.RoleSet) error

	WithTx(tx pgx.Tx) IdentityRepository
}

// ProfileCreator creates the contributor profile of a newly registered identity.
type ProfileCreator interface {
	// CreateProfile returns ErrDisplayNameTaken when either name is in use.
	CreateProfile(ctx context.Context, username string, githubProfile, screenName *string) (uuid.UUID, error)

	WithTx(tx pgx.Tx) ProfileCreator
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Token is a signed bearer credential.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer signs tokens carrying the username and role labels.
type TokenIssuer interface {
	Issue(ctx context.Context, username string, roles authz.RoleSet) (*Token, error)
}

// Authorizer is an interface for checking permissions
type Authorizer interface {
	Can(ctx context.Context, actor authz.Actor, entityType string, action string, entityID *uuid.UUID) (bool, error)
}
