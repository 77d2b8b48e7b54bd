package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/platform/eventbus"
)

const (
	LikeAddedTopic   eventbus.Topic = "likes.added"
	LikeRemovedTopic eventbus.Topic = "likes.removed"
)

type LikeAddedEvent struct {
	ResourceID uuid.UUID
	Username   string
	OccurredAt time.Time
}

// LikeRemovedEvent is only published when a row was actually removed.
type LikeRemovedEvent struct {
	ResourceID uuid.UUID
	Username   string
	OccurredAt time.Time
}
