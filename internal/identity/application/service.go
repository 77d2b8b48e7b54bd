package application

import (
	"context"
	"errors"
	"net/http"
	"strings"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
	"github.com/philly/learnhub/backend/internal/authz/permission"
	"github.com/philly/learnhub/backend/internal/identity/domain"
	"github.com/philly/learnhub/backend/internal/identity/ports"
	"github.com/philly/learnhub/backend/internal/platform/apperror"
	"github.com/philly/learnhub/backend/internal/platform/logger"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

// Error definitions for service operations
var (
	ErrUsernameTaken = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeUsernameTaken,
		"username already taken",
		http.StatusConflict,
	)

	ErrDisplayNameTaken = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeDisplayNameTaken,
		"display name already in use",
		http.StatusConflict,
	)

	ErrDisplayNameRequired = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeDisplayNameRequired,
		"at least one of github profile or screen name is required",
		http.StatusBadRequest,
	)

	// ErrInvalidCredentials does not reveal whether the username exists.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		apperror.BusinessCodeInvalidCredentials,
		"invalid username or password",
		http.StatusUnauthorized,
	)

	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeUserNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidRole,
		"role must be one of USER or ADMIN",
		http.StatusBadRequest,
	)
)

// RegisterParams contains all parameters needed to register an identity
type RegisterParams struct {
	Username      string
	Password      string
	GithubProfile *string
	ScreenName    *string
}

// IdentityService registers and authenticates identities and grants roles.
type IdentityService struct {
	repo       ports.IdentityRepository
	profiles   ports.ProfileCreator
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	authorizer ports.Authorizer
	txManager  postgres.TransactionManager
	logger     logger.Logger
}

func NewIdentityService(
	repo ports.IdentityRepository,
	profiles ports.ProfileCreator,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	authorizer ports.Authorizer,
	txManager postgres.TransactionManager,
	logger logger.Logger,
) *IdentityService {
	return &IdentityService{
		repo:       repo,
		profiles:   profiles,
		hasher:     hasher,
		issuer:     issuer,
		authorizer: authorizer,
		txManager:  txManager,
		logger:     logger,
	}
}

// Register creates an identity with the USER role together with its
// contributor profile, in one transaction.
func (s *IdentityService) Register(ctx context.Context, params RegisterParams) (*domain.Identity, error) {
	username := strings.TrimSpace(params.Username)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, err.Error())
	}
	if err := domain.ValidatePassword(params.Password); err != nil {
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, err.Error())
	}

	github, screen := blankToNil(params.GithubProfile), blankToNil(params.ScreenName)
	if github == nil && screen == nil {
		return nil, ErrDisplayNameRequired
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err, "username", username)
		return nil, apperror.Internal("failed to register", err)
	}

	identity, err := domain.NewIdentity(username, hash, authz.NewRoleSet(authz.RoleUser))
	if err != nil {
		return nil, apperror.Validation(apperror.BusinessCodeInvalidFormat, err.Error())
	}

	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		if err := s.repo.WithTx(tx.Tx()).Create(ctx, identity); err != nil {
			return err
		}
		_, err := s.profiles.WithTx(tx.Tx()).CreateProfile(ctx, identity.Username, github, screen)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		case errors.Is(err, ports.ErrDisplayNameTaken):
			return nil, ErrDisplayNameTaken
		}
		s.logger.Error(ctx, "failed to register identity", "error", err, "username", username)
		return nil, apperror.Internal("failed to register", err)
	}

	s.logger.Info(ctx, "identity registered", "username", identity.Username)
	return identity, nil
}

// Authenticate checks the credential pair and issues a signed token.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*ports.Token, *domain.Identity, error) {
	identity, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ports.ErrIdentityNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error(ctx, "failed to find identity", "error", err, "username", username)
		return nil, nil, apperror.Internal("failed to authenticate", err)
	}

	if err := s.hasher.Compare(identity.PasswordHash, password); err != nil {
		if !errors.Is(err, ports.ErrPasswordMismatch) {
			s.logger.Error(ctx, "failed to compare password", "error", err, "username", identity.Username)
		}
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, identity.Username, identity.Roles)
	if err != nil {
		s.logger.Error(ctx, "failed to issue token", "error", err, "username", identity.Username)
		return nil, nil, apperror.Internal("failed to authenticate", err)
	}
	return token, identity, nil
}

// AddRole grants a role to an identity. Granting a held role is a no-op.
func (s *IdentityService) AddRole(ctx context.Context, actor authz.Actor, username, label string) (*domain.Identity, error) {
	allowed, err := s.authorizer.Can(ctx, actor, permission.EntityIdentity, "roles_assign", nil)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actor", actor.Username)
		return nil, apperror.Internal("authorization check failed", err)
	}
	if !allowed {
		return nil, apperror.Forbidden("only administrators may grant roles")
	}

	role, err := authz.ParseRole(label)
	if err != nil {
		return nil, ErrInvalidRole
	}

	identity, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ports.ErrIdentityNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to find identity", "error", err, "username", username)
		return nil, apperror.Internal("failed to grant role", err)
	}

	if !identity.GrantRole(role) {
		return identity, nil
	}

	err = postgres.RunInTx(ctx, s.txManager, func(tx postgres.Transaction) error {
		return s.repo.WithTx(tx.Tx()).UpdateRoles(ctx, identity.Username, identity.Roles)
	})
	if err != nil {
		if errors.Is(err, ports.ErrIdentityNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to update roles",
			"error", err,
			"actor", actor.Username,
			"username", identity.Username,
		)
		return nil, apperror.Internal("failed to grant role", err)
	}

	s.logger.Info(ctx, "role granted", "actor", actor.Username, "username", identity.Username, "role", role)
	return identity, nil
}

// EnsureAdmin creates an administrator without a contributor profile unless
// the username already exists. It reports whether an identity was created.
func (s *IdentityService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ports.ErrIdentityNotFound) {
		return false, err
	}

	if err := domain.ValidatePassword(password); err != nil {
		return false, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	identity, err := domain.NewIdentity(username, hash, authz.NewRoleSet(authz.RoleUser, authz.RoleAdmin))
	if err != nil {
		return false, err
	}

	if err := s.repo.Create(ctx, identity); err != nil {
		if errors.Is(err, ports.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
