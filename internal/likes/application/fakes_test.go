package application

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/philly/learnhub/backend/internal/likes/domain"
	"github.com/philly/learnhub/backend/internal/likes/ports"
	"github.com/philly/learnhub/backend/internal/platform/eventbus"
	"github.com/philly/learnhub/backend/internal/platform/postgres"
)

type likeKey struct {
	username   string
	resourceID uuid.UUID
}

// memoryLikes enforces the (user, resource) uniqueness and resource foreign key.
type memoryLikes struct {
	mu        sync.Mutex
	rows      map[likeKey]domain.Like
	resources map[uuid.UUID]bool
}

func newMemoryLikes(resources ...uuid.UUID) *memoryLikes {
	m := &memoryLikes{rows: make(map[likeKey]domain.Like), resources: make(map[uuid.UUID]bool)}
	for _, id := range resources {
		m.resources[id] = true
	}
	return m
}

func (m *memoryLikes) WithTx(tx pgx.Tx) ports.LikeRepository { return m }

func (m *memoryLikes) Create(ctx context.Context, like *domain.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.resources[like.ResourceID] {
		return ports.ErrResourceNotFound
	}
	key := likeKey{like.Username, like.ResourceID}
	if _, ok := m.rows[key]; ok {
		return ports.ErrDuplicateLike
	}
	m.rows[key] = *like
	return nil
}

func (m *memoryLikes) Delete(ctx context.Context, username string, resourceID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := likeKey{username, resourceID}
	if _, ok := m.rows[key]; !ok {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}

func (m *memoryLikes) CountByResource(ctx context.Context, resourceID uuid.UUID) (int64, error) {
	counts, _ := m.CountByResources(ctx, []uuid.UUID{resourceID})
	return counts[resourceID], nil
}

func (m *memoryLikes) CountByResources(ctx context.Context, resourceIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[uuid.UUID]int64)
	for key := range m.rows {
		for _, id := range resourceIDs {
			if key.resourceID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (m *memoryLikes) Exists(ctx context.Context, username string, resourceID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[likeKey{username, resourceID}]
	return ok, nil
}

func (m *memoryLikes) ResourceExists(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resources[resourceID], nil
}

type noopTx struct{}

func (noopTx) Commit(ctx context.Context) error   { return nil }
func (noopTx) Rollback(ctx context.Context) error { return nil }
func (noopTx) Tx() pgx.Tx                         { return nil }

type noopTxManager struct{}

func (noopTxManager) BeginTx(ctx context.Context) (postgres.Transaction, error) { return noopTx{}, nil }

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (b *recordingBus) Publish(ctx context.Context, event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) count(topic eventbus.Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.Topic == topic {
			n++
		}
	}
	return n
}
