// Package notify delivers user-facing messages to the push channel
// consumed by the client toast layer.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis pub/sub channel the client push layer listens on.
const DefaultChannel = "notify.user"

// Levels understood by the client toast layer.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is a one-way message for a user. UserID zero means broadcast.
type Notification struct {
	UserID  int64  `json:"user_id,omitempty"`
	Message string `json:"message"`
	Level   string `json:"level"`
}

// Notifier pushes notifications to the user-facing channel.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Publisher implements Notifier over Redis pub/sub.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher constructs a Publisher. An empty channel selects DefaultChannel.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

// Notify publishes the notification as JSON.
func (p *Publisher) Notify(ctx context.Context, n Notification) error {
	if p == nil || p.client == nil {
		return nil
	}
	if n.Level == "" {
		n.Level = LevelInfo
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notify: marshal: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, raw).Err(); err != nil {
		return fmt.Errorf("notify: publish: %w", err)
	}
	return nil
}
