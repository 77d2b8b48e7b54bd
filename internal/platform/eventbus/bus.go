package eventbus

import (
	"context"
	"sync"

	"github.com/philly/learnhub/backend/internal/platform/logger"
)

// Bus manages subscriptions and event dispatching.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map
	inflight      sync.WaitGroup
	logger        logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish sends an event to all subscribers of a topic (fire-and-forget).
// Handlers run detached from the caller's cancellation but keep its values,
// so a finished request does not abort them and request ids still reach the logs.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlers, found := b.subscriptions[event.Topic]
	if !found {
		return
	}

	detached := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			if err := h(detached, event); err != nil {
				b.logger.Error(detached, "event handler failed", "topic", event.Topic, "error", err)
			}
		}(handler)
	}
}

// Drain blocks until every handler started by Publish has returned.
// It is called on shutdown and by tests.
func (b *Bus) Drain() {
	b.inflight.Wait()
}

var _ Publisher = (*Bus)(nil)
