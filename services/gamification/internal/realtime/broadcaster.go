// Package realtime fans gamification events out to connected clients over redis pub/sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func CelebrationChannel(poolID string) string {
	return fmt.Sprintf("pool:%s:celebrations", poolID)
}

type RedisBroadcaster struct {
	client *redis.Client
}

func NewRedisBroadcaster(client *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{client: client}
}

// Broadcast publishes message as JSON on channel. Having no subscribers is not an error.
func (b *RedisBroadcaster) Broadcast(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast: %w", err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// Subscribe returns a subscription to channel; the caller must Close it.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return b.client.Subscribe(ctx, channel)
}
