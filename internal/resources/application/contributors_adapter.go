package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	contributorPorts "github.com/philly/learnhub/backend/internal/contributors/ports"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

// ContributorsAdapter gives the catalog the slice of the contributors
// repository it needs: the counter and name lookups.
type ContributorsAdapter struct {
	repo contributorPorts.ContributorRepository
}

// NewContributorsAdapter creates a new contributors adapter
func NewContributorsAdapter(repo contributorPorts.ContributorRepository) *ContributorsAdapter {
	return &ContributorsAdapter{repo: repo}
}

func (a *ContributorsAdapter) Increment(ctx context.Context, contributorID uuid.UUID) error {
	return translate(a.repo.IncrementContributions(ctx, contributorID))
}

func (a *ContributorsAdapter) Decrement(ctx context.Context, contributorID uuid.UUID) error {
	return translate(a.repo.DecrementContributions(ctx, contributorID))
}

func (a *ContributorsAdapter) WithTx(tx pgx.Tx) ports.ContributionCounter {
	return &ContributorsAdapter{repo: a.repo.WithTx(tx)}
}

func (a *ContributorsAdapter) ContributorIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	contributor, err := a.repo.FindByDisplayName(ctx, name)
	if err != nil {
		return uuid.Nil, translate(err)
	}
	return contributor.ID, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, contributorPorts.ErrContributorNotFound):
		return ports.ErrContributorNotFound
	case errors.Is(err, contributorPorts.ErrCounterUnderflow):
		return ports.ErrCounterUnderflow
	}
	return err
}

var (
	_ ports.ContributionCounter = (*ContributorsAdapter)(nil)
	_ ports.ContributorLookup   = (*ContributorsAdapter)(nil)
)
