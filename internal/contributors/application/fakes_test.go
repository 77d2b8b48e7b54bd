package application

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/philly/learnhub/backend/internal/contributors/domain"
	"github.com/philly/learnhub/backend/internal/contributors/ports"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

// memoryRepo mirrors the uniqueness and counter rules of the contributors table.
type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.Contributor
	err  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[uuid.UUID]domain.Contributor)}
}

func (r *memoryRepo) WithTx(tx pgx.Tx) ports.ContributorRepository { return r }

func eqFold(a *string, b string) bool {
	return a != nil && strings.EqualFold(*a, b)
}

func (r *memoryRepo) nameTaken(c *domain.Contributor) bool {
	for id, other := range r.rows {
		if id == c.ID {
			continue
		}
		if c.GithubProfile != nil && eqFold(other.GithubProfile, *c.GithubProfile) {
			return true
		}
		if c.ScreenName != nil && eqFold(other.ScreenName, *c.ScreenName) {
			return true
		}
	}
	return false
}

func (r *memoryRepo) Create(ctx context.Context, c *domain.Contributor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c) {
		return ports.ErrDisplayNameTaken
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, ports.ErrContributorNotFound
	}
	return &c, nil
}

func (r *memoryRepo) FindByDisplayName(ctx context.Context, name string) (*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	name = strings.TrimSpace(name)
	for _, c := range r.rows {
		if eqFold(c.GithubProfile, name) || eqFold(c.ScreenName, name) {
			found := c
			return &found, nil
		}
	}
	return nil, ports.ErrContributorNotFound
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if eqFold(c.Username, username) {
			found := c
			return &found, nil
		}
	}
	return nil, ports.ErrContributorNotFound
}

func (r *memoryRepo) list(less func(a, b domain.Contributor) int) ([]*domain.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	all := make([]domain.Contributor, 0, len(r.rows))
	for _, c := range r.rows {
		all = append(all, c)
	}
	slices.SortFunc(all, less)
	out := make([]*domain.Contributor, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *memoryRepo) ListAll(ctx context.Context) ([]*domain.Contributor, error) {
	return r.list(func(a, b domain.Contributor) int {
		return strings.Compare(b.DisplayName(), a.DisplayName())
	})
}

func (r *memoryRepo) ListByContributions(ctx context.Context) ([]*domain.Contributor, error) {
	return r.list(func(a, b domain.Contributor) int {
		return b.Contributions - a.Contributions
	})
}

func (r *memoryRepo) Update(ctx context.Context, c *domain.Contributor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[c.ID]
	if !ok {
		return ports.ErrContributorNotFound
	}
	if r.nameTaken(c) {
		return ports.ErrDisplayNameTaken
	}
	stored.GithubProfile = c.GithubProfile
	stored.ScreenName = c.ScreenName
	stored.UpdatedAt = c.UpdatedAt
	r.rows[c.ID] = stored
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return ports.ErrContributorNotFound
	}
	if c.Contributions > 0 {
		return ports.ErrContributorHasResources
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryRepo) IncrementContributions(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return ports.ErrContributorNotFound
	}
	c.Contributions++
	r.rows[id] = c
	return nil
}

func (r *memoryRepo) DecrementContributions(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return ports.ErrContributorNotFound
	}
	if c.Contributions == 0 {
		return ports.ErrCounterUnderflow
	}
	c.Contributions--
	r.rows[id] = c
	return nil
}

func (r *memoryRepo) put(c *domain.Contributor) *domain.Contributor {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID] = *c
	return c
}

type stubResources map[uuid.UUID][]ports.OwnedResource

func (s stubResources) ListByContributor(ctx context.Context, id uuid.UUID) ([]ports.OwnedResource, error) {
	return s[id], nil
}

type noopTx struct{}

func (noopTx) Commit(ctx context.Context) error   { return nil }
func (noopTx) Rollback(ctx context.Context) error { return nil }
func (noopTx) Tx() pgx.Tx                         { return nil }

type noopTxManager struct{}

func (noopTxManager) BeginTx(ctx context.Context) (postgres.Transaction, error) { return noopTx{}, nil }

type recordingBus struct {
	mu     sync.Mutex
	topics []eventbus.Topic
}

func (b *recordingBus) Publish(ctx context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, event.Topic)
}
