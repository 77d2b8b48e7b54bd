package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/philly/learnhub/backend/internal/contributors/domain"
	"github.com/philly/learnhub/backend/internal/contributors/ports"
	identityPorts "github.com/philly/learnhub/backend/internal/identity/ports"
)

// ProfileCreator creates the contributor profile of a newly registered identity.
type ProfileCreator struct {
	repo ports.ContributorRepository
}

// NewProfileCreator creates a new profile creator
func NewProfileCreator(repo ports.ContributorRepository) *ProfileCreator {
	return &ProfileCreator{repo: repo}
}

// CreateProfile implements identityPorts.ProfileCreator
func (p *ProfileCreator) CreateProfile(ctx context.Context, username string, githubProfile, screenName *string) (uuid.UUID, error) {
	contributor, err := domain.NewContributor(githubProfile, screenName, &username)
	if err != nil {
		return uuid.Nil, err
	}
	if err := p.repo.Create(ctx, contributor); err != nil {
		if errors.Is(err, ports.ErrDisplayNameTaken) {
			return uuid.Nil, identityPorts.ErrDisplayNameTaken
		}
		return uuid.Nil, err
	}
	return contributor.ID, nil
}

func (p *ProfileCreator) WithTx(tx pgx.Tx) identityPorts.ProfileCreator {
	return &ProfileCreator{repo: p.repo.WithTx(tx)}
}

var _ identityPorts.ProfileCreator = (*ProfileCreator)(nil)
