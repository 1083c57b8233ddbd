// Package notify publishes best-effort bridge change notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Event types.
const (
	EventBridgeUpdated = "bridge.updated"
)

// publishTimeout bounds a single detached publish.
const publishTimeout = 3 * time.Second

// Event is the payload sent to subscribers.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BridgeID   uint64    `json:"bridge_id"`
	UserID     uint64    `json:"user_id"`
	Slug       string    `json:"slug"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType string, bridgeID, userID uint64, slug string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		BridgeID:   bridgeID,
		UserID:     userID,
		Slug:       slug,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers an event synchronously.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher sends events to a redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to redisURL and verifies the connection.
func NewRedisPublisher(redisURL, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("notify: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if errPing := client.Ping(ctx).Err(); errPing != nil {
		_ = client.Close()
		return nil, fmt.Errorf("notify: connect to redis: %w", errPing)
	}
	return NewRedisPublisherWithClient(client, channel), nil
}

// NewRedisPublisherWithClient wraps an existing client.
func NewRedisPublisherWithClient(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}
	if errPublish := p.client.Publish(ctx, p.channel, payload).Err(); errPublish != nil {
		return fmt.Errorf("notify: publish %s: %w", event.Type, errPublish)
	}
	return nil
}

// Close closes the redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Notifier emits events without blocking the caller.
type Notifier struct {
	publisher Publisher
	done      func() // Test hook run after each detached publish.
}

// NewNotifier wraps publisher. A nil publisher discards events.
func NewNotifier(publisher Publisher) *Notifier {
	if publisher == nil {
		publisher = Nop{}
	}
	return &Notifier{publisher: publisher}
}

// Emit publishes event from a detached goroutine. Failures and panics are logged and swallowed.
func (n *Notifier) Emit(event Event) {
	if n == nil {
		return
	}
	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Errorf("notify: publish panic (type=%s bridge=%d): %v", event.Type, event.BridgeID, recovered)
			}
			if n.done != nil {
				n.done()
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := n.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"event":     event.Type,
				"bridge_id": event.BridgeID,
			}).Warn("notify: publish failed")
		}
	}()
}
