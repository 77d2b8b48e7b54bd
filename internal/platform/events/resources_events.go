package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/platform/eventbus"
)

// Event topics for resources
const (
	ResourceCreatedTopic eventbus.Topic = "resources.created"
	ResourceUpdatedTopic eventbus.Topic = "resources.updated"
	ResourceDeletedTopic eventbus.Topic = "resources.deleted"
)

// ResourceCreatedEvent is published after a resource and its owner's counter commit.
type ResourceCreatedEvent struct {
	ResourceID    uuid.UUID
	LearningID    int64
	ContributorID uuid.UUID
	Actor         string // Username that submitted the resource
	OccurredAt    time.Time
}

// ResourceUpdatedEvent is published when a resource is changed
type ResourceUpdatedEvent struct {
	ResourceID uuid.UUID
	LearningID int64
	Actor      string
	OccurredAt time.Time
}

// ResourceDeletedEvent is published after a resource is removed and the counter decremented
type ResourceDeletedEvent struct {
	LearningID    int64
	ContributorID uuid.UUID
	Actor         string
	OccurredAt    time.Time
}
