package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/philly/learnhub/backend/internal/platform/eventbus"
)

// Event topics for contributor profiles
const (
	ContributorUpdatedTopic eventbus.Topic = "contributors.updated"
	ContributorDeletedTopic eventbus.Topic = "contributors.deleted"
)

type ContributorUpdatedEvent struct {
	ContributorID uuid.UUID
	DisplayName   string
	Actor         string
	OccurredAt    time.Time
}

type ContributorDeletedEvent struct {
	ContributorID uuid.UUID
	DisplayName   string
	Actor         string
	OccurredAt    time.Time
}

// AllTopics lists every topic the catalog publishes, for subscribers that
// observe the whole stream.
var AllTopics = []eventbus.Topic{
	ResourceCreatedTopic,
	ResourceUpdatedTopic,
	ResourceDeletedTopic,
	LikeAddedTopic,
	LikeRemovedTopic,
	ContributorUpdatedTopic,
	ContributorDeletedTopic,
}
