package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	authz "github.com/philly/learnhub/backend/internal/authz/domain"
)

// Business rule constants
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	MaxPasswordLength = 72
)

var (
	ErrInvalidUsername  = errors.New("username may only contain letters, digits, '_' and '-'")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("username must not exceed 30 characters")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
	ErrEmptyHash        = errors.New("password hash cannot be empty")
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Identity is an authenticated account with a flat set of role labels.
type Identity struct {
	Username     string
	PasswordHash string
	Roles        authz.RoleSet
	CreatedAt    time.Time
}

// NewIdentity creates an identity. The username is trimmed and validated;
// the password must already be hashed.
func NewIdentity(username, passwordHash string, roles authz.RoleSet) (*Identity, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrEmptyHash
	}

	return &Identity{
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    time.Now(),
	}, nil
}

// GrantRole adds a role and reports whether the set changed.
func (i *Identity) GrantRole(role authz.Role) bool {
	if i.Roles.Has(role) {
		return false
	}
	i.Roles = i.Roles.With(role)
	return true
}

func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
