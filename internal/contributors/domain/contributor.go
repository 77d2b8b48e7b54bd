package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Business rule constants
const (
	MaxDisplayNameLength = 100
)

// Validation errors
var (
	ErrDisplayNameRequired = errors.New("at least one of github profile or screen name is required")
	ErrDisplayNameTooLong  = errors.New("display names must not exceed 100 characters")
)

// Contributor is the public profile that owns resources.
// Contributions always equals the number of resources the contributor owns;
// it is only changed in the same transaction that inserts or deletes one.
type Contributor struct {
	ID            uuid.UUID
	GithubProfile *string
	ScreenName    *string
	Contributions int
	Username      *string // Linked identity, absent for legacy profiles
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewContributor creates a profile with a zero counter. Blank names are
// treated as absent and at least one name must remain.
func NewContributor(githubProfile, screenName, username *string) (*Contributor, error) {
	c := &Contributor{
		ID:            uuid.New(),
		GithubProfile: NormalizeName(githubProfile),
		ScreenName:    NormalizeName(screenName),
		Username:      NormalizeName(username),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// DisplayName is the github handle when present, otherwise the screen name.
func (c *Contributor) DisplayName() string {
	if c.GithubProfile != nil {
		return *c.GithubProfile
	}
	if c.ScreenName != nil {
		return *c.ScreenName
	}
	return ""
}

// HasGithubProfile reports whether the contributor has a github handle.
func (c *Contributor) HasGithubProfile() bool {
	return c.GithubProfile != nil
}

// ProfilePatch is a partial profile edit. A nil field is left untouched,
// a blank field clears that name, anything else is trimmed and stored.
type ProfilePatch struct {
	GithubProfile *string
	ScreenName    *string
}

// HasName reports whether the patch supplies at least one non-blank name.
func (p ProfilePatch) HasName() bool {
	return NormalizeName(p.GithubProfile) != nil || NormalizeName(p.ScreenName) != nil
}

// Apply merges the patch. The contributor is left unchanged when the patch
// supplies no name or the merge would leave no display name.
func (c *Contributor) Apply(p ProfilePatch) error {
	if !p.HasName() {
		return ErrDisplayNameRequired
	}

	next := *c
	if p.GithubProfile != nil {
		next.GithubProfile = NormalizeName(p.GithubProfile)
	}
	if p.ScreenName != nil {
		next.ScreenName = NormalizeName(p.ScreenName)
	}
	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now()
	*c = next
	return nil
}

func (c *Contributor) validate() error {
	if c.GithubProfile == nil && c.ScreenName == nil {
		return ErrDisplayNameRequired
	}
	for _, name := range []*string{c.GithubProfile, c.ScreenName} {
		if name != nil && len(*name) > MaxDisplayNameLength {
			return ErrDisplayNameTooLong
		}
	}
	return nil
}

// NormalizeName trims a name and maps blank to nil.
func NormalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
