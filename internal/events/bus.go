package events

import (
	"context"
	"sync"

	"github.com/fretehub/fretehub/pkg/logging"
)

// LeadCreatedHandler reacts to a published LeadCreatedV1 event.
type LeadCreatedHandler func(ctx context.Context, evt LeadCreatedV1)

// Bus is an in-process publish/subscribe channel between the lead store and
// its reactions. Publishing never blocks the caller: each subscriber runs on
// its own goroutine and its failures (including panics) stay on its side of
// the boundary.
type Bus struct {
	mu          sync.RWMutex
	subscribers []LeadCreatedHandler
	wg          sync.WaitGroup
	logger      *logging.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.Default()
	}
	return &Bus{logger: logger}
}

// SubscribeLeadCreated registers a handler for LeadCreatedV1 events.
func (b *Bus) SubscribeLeadCreated(h LeadCreatedHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, h)
}

// PublishLeadCreated dispatches the event to every subscriber and returns
// immediately. Delivery is not tied to the publisher's request lifetime, so
// handlers receive a fresh context.
func (b *Bus) PublishLeadCreated(evt LeadCreatedV1) {
	b.mu.RLock()
	subs := make([]LeadCreatedHandler, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, h := range subs {
		b.wg.Add(1)
		go func(h LeadCreatedHandler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event subscriber panicked", "event", "lead.created", "panic", r)
				}
			}()
			h(context.Background(), evt)
		}(h)
	}
}

// Close waits for in-flight handlers to finish or the context to expire.
func (b *Bus) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
