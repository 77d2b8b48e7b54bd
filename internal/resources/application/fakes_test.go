package application

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
	"github.com/philly/learnhub/backend/internal/resources/domain"
	"github.com/philly/learnhub/backend/internal/resources/ports"
)

type contributorRow struct {
	name          string
	contributions int
}

type likeKey struct {
	username   string
	resourceID uuid.UUID
}

// store is the shared state behind every fake in this package. It mirrors
// the unique learning id, the owner foreign key and the non-negative counter.
type store struct {
	mu             sync.Mutex
	resources      map[uuid.UUID]domain.Resource
	contributors   map[uuid.UUID]contributorRow
	likes          map[likeKey]bool
	nextLearningID int64

	// beforeLock runs ahead of a locking read, standing in for a writer
	// that commits just before the lock is taken.
	beforeLock func()
}

func newStore() *store {
	return &store{
		resources:      make(map[uuid.UUID]domain.Resource),
		contributors:   make(map[uuid.UUID]contributorRow),
		likes:          make(map[likeKey]bool),
		nextLearningID: 1,
	}
}

func (s *store) addContributor(name string, contributions int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.contributors[id] = contributorRow{name: name, contributions: contributions}
	return id
}

func (s *store) contributions(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contributors[id].contributions
}

func (s *store) owned(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.resources {
		if r.ContributorID == id {
			n++
		}
	}
	return n
}

func (s *store) like(username string, resourceID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes[likeKey{username, resourceID}] = true
}

type snapshot struct {
	resources      map[uuid.UUID]domain.Resource
	contributors   map[uuid.UUID]contributorRow
	nextLearningID int64
}

func (s *store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{maps.Clone(s.resources), maps.Clone(s.contributors), s.nextLearningID}
}

// restore keeps the sequence advanced, like a real sequence after rollback.
func (s *store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = snap.resources
	s.contributors = snap.contributors
}

// snapshotTxManager undoes every write of a transaction that is not committed.
type snapshotTxManager struct {
	store *store
}

func (m snapshotTxManager) BeginTx(ctx context.Context) (postgres.Transaction, error) {
	return &snapshotTx{store: m.store, snap: m.store.snapshot()}, nil
}

type snapshotTx struct {
	store     *store
	snap      snapshot
	committed bool
}

func (t *snapshotTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *snapshotTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.store.restore(t.snap)
	}
	return nil
}

func (t *snapshotTx) Tx() pgx.Tx { return nil }

type memoryResources struct{ s *store }

func (r memoryResources) WithTx(tx pgx.Tx) ports.ResourceRepository { return r }

func (r memoryResources) Create(ctx context.Context, resource *domain.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contributors[resource.ContributorID]; !ok {
		return ports.ErrOwnerNotFound
	}
	if resource.LearningID == 0 {
		resource.LearningID = r.s.nextLearningID
		r.s.nextLearningID++
	} else {
		for _, other := range r.s.resources {
			if other.LearningID == resource.LearningID {
				return ports.ErrDuplicateLearningID
			}
		}
		if resource.LearningID >= r.s.nextLearningID {
			r.s.nextLearningID = resource.LearningID + 1
		}
	}
	r.s.resources[resource.ID] = *resource
	return nil
}

func (r memoryResources) withName(res domain.Resource) *domain.Resource {
	res.ContributorName = r.s.contributors[res.ContributorID].name
	return &res
}

func (r memoryResources) FindByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.resources[id]
	if !ok {
		return nil, ports.ErrResourceNotFound
	}
	return r.withName(res), nil
}

func (r memoryResources) FindByLearningID(ctx context.Context, learningID int64) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.resources {
		if res.LearningID == learningID {
			return r.withName(res), nil
		}
	}
	return nil, ports.ErrResourceNotFound
}

func (r memoryResources) FindByLearningIDForUpdate(ctx context.Context, learningID int64) (*domain.Resource, error) {
	if r.s.beforeLock != nil {
		r.s.beforeLock()
	}
	return r.FindByLearningID(ctx, learningID)
}

func (r memoryResources) matching(f ports.ListFilter) []*domain.Resource {
	var out []*domain.Resource
	for _, res := range r.s.resources {
		switch {
		case f.FormatCategory != nil && res.FormatCategory != *f.FormatCategory:
		case f.SubCategory != nil && res.SubCategory != *f.SubCategory:
		case f.ContributorID != nil && res.ContributorID != *f.ContributorID:
		case f.Title != "" && !strings.EqualFold(res.Title, f.Title):
		case f.Keyword != "" && !strings.Contains(strings.ToLower(res.Description), strings.ToLower(f.Keyword)):
		default:
			out = append(out, r.withName(res))
		}
	}
	return out
}

func (r memoryResources) List(ctx context.Context, f ports.ListFilter) ([]*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.matching(f)

	slices.SortFunc(out, func(a, b *domain.Resource) int {
		var c int
		switch f.OrderBy {
		case ports.OrderByFormatCategory:
			c = strings.Compare(string(a.FormatCategory), string(b.FormatCategory))
		case ports.OrderByCreatedAt:
			c = a.CreatedAt.Compare(b.CreatedAt)
		case ports.OrderByModifiedAt:
			c = a.ModifiedAt.Compare(b.ModifiedAt)
		case ports.OrderBySubCategory:
			c = strings.Compare(string(a.SubCategory), string(b.SubCategory))
		case ports.OrderByContributorName:
			c = strings.Compare(a.ContributorName, b.ContributorName)
		}
		if f.OrderDesc {
			c = -c
		}
		if c == 0 {
			c = int(a.LearningID - b.LearningID)
		}
		return c
	})

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*domain.Resource{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r memoryResources) Count(ctx context.Context, f ports.ListFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

func (r memoryResources) Update(ctx context.Context, resource *domain.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.resources[resource.ID]
	if !ok {
		return ports.ErrResourceNotFound
	}
	stored.Link = resource.Link
	stored.Title = resource.Title
	stored.FormatCategory = resource.FormatCategory
	stored.SubCategory = resource.SubCategory
	stored.Description = resource.Description
	stored.ModifiedAt = resource.ModifiedAt
	r.s.resources[resource.ID] = stored
	return nil
}

func (r memoryResources) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.resources[id]
	if !ok {
		return uuid.Nil, ports.ErrResourceNotFound
	}
	delete(r.s.resources, id)
	return res.ContributorID, nil
}

func (r memoryResources) GetOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.resources[id]
	if !ok {
		return uuid.Nil, ports.ErrResourceNotFound
	}
	return res.ContributorID, nil
}

type memoryCounter struct{ s *store }

func (c memoryCounter) WithTx(tx pgx.Tx) ports.ContributionCounter { return c }

func (c memoryCounter) Increment(ctx context.Context, id uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	row, ok := c.s.contributors[id]
	if !ok {
		return ports.ErrContributorNotFound
	}
	row.contributions++
	c.s.contributors[id] = row
	return nil
}

func (c memoryCounter) Decrement(ctx context.Context, id uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	row, ok := c.s.contributors[id]
	if !ok {
		return ports.ErrContributorNotFound
	}
	if row.contributions == 0 {
		return ports.ErrCounterUnderflow
	}
	row.contributions--
	c.s.contributors[id] = row
	return nil
}

func (c memoryCounter) ContributorIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for id, row := range c.s.contributors {
		if strings.EqualFold(row.name, strings.TrimSpace(name)) {
			return id, nil
		}
	}
	return uuid.Nil, ports.ErrContributorNotFound
}

type memoryLikes struct{ s *store }

func (l memoryLikes) CountByResource(ctx context.Context, id uuid.UUID) (int64, error) {
	counts, err := l.CountByResources(ctx, []uuid.UUID{id})
	return counts[id], err
}

func (l memoryLikes) CountByResources(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for key := range l.s.likes {
		if slices.Contains(ids, key.resourceID) {
			counts[key.resourceID]++
		}
	}
	return counts, nil
}

func (l memoryLikes) HasLiked(ctx context.Context, username string, id uuid.UUID) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.likes[likeKey{username, id}], nil
}

type recordingBus struct {
	mu     sync.Mutex
	topics []eventbus.Topic
}

func (b *recordingBus) Publish(ctx context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, event.Topic)
}

func (b *recordingBus) published() []eventbus.Topic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.topics)
}

// seed stores a resource directly, bypassing the service and the counter.
func (s *store) seed(owner uuid.UUID, title string, format domain.FormatCategory, sub domain.SubCategory, createdAt time.Time) domain.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := domain.Resource{
		ID:             uuid.New(),
		LearningID:     s.nextLearningID,
		Link:           "https://example.com/" + title,
		Title:          title,
		FormatCategory: format,
		SubCategory:    sub,
		Description:    "about " + title,
		ContributorID:  owner,
		CreatedAt:      createdAt,
		ModifiedAt:     createdAt,
	}
	s.nextLearningID++
	s.resources[res.ID] = res
	row := s.contributors[owner]
	row.contributions++
	s.contributors[owner] = row
	return res
}
