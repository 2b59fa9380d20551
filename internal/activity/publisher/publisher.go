// Package publisher provides optional pub/sub fan-out for activity entries.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the envelope published for each recorded activity.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Publisher publishes activity events to subscribers.
type Publisher interface {
	// Publish sends an event of the given type with the given payload.
	Publish(ctx context.Context, eventType string, payload interface{}) error

	// Close releases the underlying connection.
	Close() error
}

type redisPublisher struct {
	client  *redis.Client
	channel string
	logger  *zap.SugaredLogger
}

// NewRedis creates a Redis-backed publisher writing to the given channel.
func NewRedis(addr, channel string, logger *zap.SugaredLogger) Publisher {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &redisPublisher{client: client, channel: channel, logger: logger}
}

// Publish sends an event of the given type with the given payload.
func (p *redisPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Warnw("activity publish failed", "channel", p.channel, "type", eventType, "error", err)
		return err
	}
	return nil
}

// Close releases the underlying connection.
func (p *redisPublisher) Close() error {
	return p.client.Close()
}
