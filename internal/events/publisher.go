// Package events announces complaint lifecycle changes to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"complaint-service/internal/model"
)

type Type string

const (
	TypeComplaintCreated       Type = "complaint.created"
	TypeComplaintStatusChanged Type = "complaint.status_changed"
)

// Event never carries the resident's contact number.
type Event struct {
	Type          Type                  `json:"type"`
	TrackingID    string                `json:"tracking_id"`
	Status        model.ComplaintStatus `json:"status"`
	ComplaintType model.ComplaintType   `json:"complaint_type"`
	OccurredAt    time.Time             `json:"occurred_at"`
}

func NewEvent(eventType Type, c *model.Complaint, at time.Time) Event {
	return Event{
		Type:          eventType,
		TrackingID:    c.TrackingID,
		Status:        c.Status,
		ComplaintType: c.Type,
		OccurredAt:    at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error {
	return nil
}

type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher sends events as JSON over Redis pub/sub.
type RedisPublisher struct {
	client  redisClient
	channel string
}

func NewRedisPublisher(client redisClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	if err := p.client.Publish(ctx, p.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
