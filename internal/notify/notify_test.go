package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisPublisherPublishes(t *testing.T) {
	s := miniredis.RunT(t)

	publisher, err := NewRedisPublisher("redis://"+s.Addr(), "bridges")
	if err != nil {
		t.Fatalf("NewRedisPublisher: %v", err)
	}
	defer publisher.Close()

	sub := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer sub.Close()
	ctx := context.Background()
	pubsub := sub.Subscribe(ctx, "bridges")
	defer pubsub.Close()
	if _, errReceive := pubsub.Receive(ctx); errReceive != nil {
		t.Fatalf("subscribe: %v", errReceive)
	}

	event := NewEvent(EventBridgeUpdated, 9, 3, "acme")
	if errPublish := publisher.Publish(ctx, event); errPublish != nil {
		t.Fatalf("publish: %v", errPublish)
	}

	select {
	case msg := <-pubsub.Channel():
		var got Event
		if errUnmarshal := json.Unmarshal([]byte(msg.Payload), &got); errUnmarshal != nil {
			t.Fatalf("unmarshal: %v", errUnmarshal)
		}
		if got.ID != event.ID || got.BridgeID != 9 || got.Slug != "acme" {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message")
	}
}

func TestNewRedisPublisherFailsWhenUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := NewRedisPublisher("redis://"+addr, "bridges"); err == nil {
		t.Fatalf("expected connection error")
	}
}

type failingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *failingPublisher) Publish(context.Context, Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return errors.New("broker down")
}

type panickingPublisher struct{}

func (panickingPublisher) Publish(context.Context, Event) error { panic("boom") }

func TestNotifierSwallowsFailures(t *testing.T) {
	publisher := &failingPublisher{}
	n := NewNotifier(publisher)
	var wg sync.WaitGroup
	n.done = wg.Done

	wg.Add(1)
	n.Emit(NewEvent(EventBridgeUpdated, 1, 1, "a"))
	wg.Wait()

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if publisher.calls != 1 {
		t.Fatalf("calls = %d, want 1", publisher.calls)
	}
}

func TestNotifierRecoversPanics(t *testing.T) {
	n := NewNotifier(panickingPublisher{})
	var wg sync.WaitGroup
	n.done = wg.Done

	wg.Add(1)
	n.Emit(NewEvent(EventBridgeUpdated, 1, 1, "a"))
	wg.Wait()
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Emit(NewEvent(EventBridgeUpdated, 1, 1, "a"))
	NewNotifier(nil).Emit(NewEvent(EventBridgeUpdated, 1, 1, "a"))
}
