package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pool-fund/services/notification/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	maxStored    = 100
	retention    = 30 * 24 * time.Hour
	mutedValue   = "muted"
	deliveredTag = "1"
)

func Channel(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func listKey(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func seenKey(userID, notificationID string) string {
	return fmt.Sprintf("notification_seen:%s:%s", userID, notificationID)
}

func muteKey(userID, poolID string) string {
	return fmt.Sprintf("notification_mute:%s:%s", userID, poolID)
}

// RedisInbox keeps the latest notifications per user in a capped list and
// fans each new one out on the user's pub/sub channel.
type RedisInbox struct {
	client *redis.Client
}

func NewRedisInbox(client *redis.Client) *RedisInbox {
	return &RedisInbox{client: client}
}

// Deliver stores and publishes n unless a notification with the same ID was
// already delivered to the same user.
func (i *RedisInbox) Deliver(ctx context.Context, n *entity.Notification) (bool, error) {
	first, err := i.client.SetNX(ctx, seenKey(n.UserID, n.ID), deliveredTag, retention).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark notification as delivered: %w", err)
	}
	if !first {
		return false, nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return false, fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := listKey(n.UserID)
	pipe := i.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxStored-1)
	pipe.Expire(ctx, key, retention)
	if _, err := pipe.Exec(ctx); err != nil {
		i.client.Del(ctx, seenKey(n.UserID, n.ID))
		return false, fmt.Errorf("failed to store notification: %w", err)
	}

	if err := i.client.Publish(ctx, Channel(n.UserID), payload).Err(); err != nil {
		return true, fmt.Errorf("failed to publish notification to %s: %w", Channel(n.UserID), err)
	}
	return true, nil
}

func (i *RedisInbox) List(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error) {
	key := listKey(userID)
	raw, err := i.client.LRange(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]entity.Notification, 0, len(raw))
	for _, item := range raw {
		var n entity.Notification
		if err := json.Unmarshal([]byte(item), &n); err == nil {
			notifications = append(notifications, n)
		}
	}

	total, err := i.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return notifications, total, nil
}

func (i *RedisInbox) IsMuted(ctx context.Context, userID, poolID string) (bool, error) {
	_, err := i.client.Get(ctx, muteKey(userID, poolID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read notification settings: %w", err)
	}
	return true, nil
}

func (i *RedisInbox) SetMuted(ctx context.Context, userID, poolID string, muted bool) error {
	key := muteKey(userID, poolID)
	if !muted {
		return i.client.Del(ctx, key).Err()
	}
	return i.client.Set(ctx, key, mutedValue, 0).Err()
}

func (i *RedisInbox) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return i.client.Subscribe(ctx, Channel(userID))
}
