package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUsernameRequired = errors.New("liking requires an identified user")
	ErrResourceRequired = errors.New("resource id is required")
)

// Like records that one identity likes one resource.
// The (Username, ResourceID) pair is unique.
type Like struct {
	ID         uuid.UUID
	Username   string
	ResourceID uuid.UUID
	CreatedAt  time.Time
}

// NewLike creates a like for an identified user.
func NewLike(username string, resourceID uuid.UUID) (*Like, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if resourceID == uuid.Nil {
		return nil, ErrResourceRequired
	}
	return &Like{
		ID:         uuid.New(),
		Username:   username,
		ResourceID: resourceID,
		CreatedAt:  time.Now(),
	}, nil
}
