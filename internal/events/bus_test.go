package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(nil)

	var delivered atomic.Int32
	got := make(chan LeadCreatedV1, 2)
	for i := 0; i < 2; i++ {
		bus.SubscribeLeadCreated(func(ctx context.Context, evt LeadCreatedV1) {
			delivered.Add(1)
			got <- evt
		})
	}

	evt := LeadCreatedV1{EventID: "evt-1", Name: "Maria", Email: "maria@example.com", OccurredAt: time.Now()}
	bus.PublishLeadCreated(evt)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := bus.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	if delivered.Load() != 2 {
		t.Fatalf("expected 2 deliveries, got %d", delivered.Load())
	}
	received := <-got
	if received.Email != evt.Email {
		t.Errorf("expected email %s, got %s", evt.Email, received.Email)
	}
}

func TestPublishDoesNotBlockPublisher(t *testing.T) {
	bus := NewBus(nil)
	release := make(chan struct{})
	bus.SubscribeLeadCreated(func(ctx context.Context, evt LeadCreatedV1) {
		<-release
	})

	start := time.Now()
	bus.PublishLeadCreated(LeadCreatedV1{EventID: "evt-2"})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("publish blocked for %v", elapsed)
	}
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = bus.Close(ctx)
}

func TestPanickingSubscriberIsContained(t *testing.T) {
	bus := NewBus(nil)

	var delivered atomic.Int32
	bus.SubscribeLeadCreated(func(ctx context.Context, evt LeadCreatedV1) {
		panic("boom")
	})
	bus.SubscribeLeadCreated(func(ctx context.Context, evt LeadCreatedV1) {
		delivered.Add(1)
	})

	bus.PublishLeadCreated(LeadCreatedV1{EventID: "evt-3"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := bus.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if delivered.Load() != 1 {
		t.Fatalf("panic in one subscriber must not affect the other")
	}
}

func TestCloseTimesOutOnStuckHandler(t *testing.T) {
	bus := NewBus(nil)
	release := make(chan struct{})
	defer close(release)
	bus.SubscribeLeadCreated(func(ctx context.Context, evt LeadCreatedV1) {
		<-release
	})
	bus.PublishLeadCreated(LeadCreatedV1{EventID: "evt-4"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := bus.Close(ctx); err == nil {
		t.Fatal("expected timeout error from Close")
	}
}
