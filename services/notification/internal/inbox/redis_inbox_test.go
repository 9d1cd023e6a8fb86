package inbox

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pool-fund/services/notification/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInbox(t *testing.T) (*miniredis.Miniredis, *redis.Client, *RedisInbox) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client, NewRedisInbox(client)
}

func notification(userID, id string) *entity.Notification {
	return &entity.Notification{
		ID:        id,
		UserID:    userID,
		Title:     "Milestone reached",
		Message:   "Trip fund reached 50% of its goal",
		Type:      entity.TypeMilestoneReached,
		CreatedAt: "2026-03-01T12:00:00Z",
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "notifications:user-1", Channel("user-1"))
	assert.Equal(t, "notifications:user-1", listKey("user-1"))
	assert.Equal(t, "notification_seen:user-1:milestone:pool-1:50", seenKey("user-1", "milestone:pool-1:50"))
	assert.Equal(t, "notification_mute:user-1:pool-1", muteKey("user-1", "pool-1"))
}

func TestDeliver_StoresOncePerID(t *testing.T) {
	mr, _, inbox := newTestInbox(t)
	ctx := context.Background()

	delivered, err := inbox.Deliver(ctx, notification("user-1", "milestone:pool-1:50"))
	require.NoError(t, err)
	assert.True(t, delivered)

	delivered, err = inbox.Deliver(ctx, notification("user-1", "milestone:pool-1:50"))
	require.NoError(t, err)
	assert.False(t, delivered)

	items, total, err := inbox.List(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "milestone:pool-1:50", items[0].ID)

	assert.True(t, mr.Exists(seenKey("user-1", "milestone:pool-1:50")))
	assert.Equal(t, retention, mr.TTL(seenKey("user-1", "milestone:pool-1:50")))

	delivered, err = inbox.Deliver(ctx, notification("user-2", "milestone:pool-1:50"))
	require.NoError(t, err)
	assert.True(t, delivered, "the marker is per user")
}

func TestDeliver_FailedStoreClearsMarker(t *testing.T) {
	mr, _, inbox := newTestInbox(t)
	ctx := context.Background()

	// A string under the list key makes LPUSH fail with WRONGTYPE.
	require.NoError(t, mr.Set(listKey("user-1"), "not-a-list"))

	_, err := inbox.Deliver(ctx, notification("user-1", "badge:b-1"))
	require.Error(t, err)
	assert.False(t, mr.Exists(seenKey("user-1", "badge:b-1")))

	mr.Del(listKey("user-1"))
	delivered, err := inbox.Deliver(ctx, notification("user-1", "badge:b-1"))
	require.NoError(t, err)
	assert.True(t, delivered)
}

func TestDeliver_CapsStoredList(t *testing.T) {
	_, _, inbox := newTestInbox(t)
	ctx := context.Background()

	for n := 0; n < maxStored+5; n++ {
		_, err := inbox.Deliver(ctx, notification("user-1", fmt.Sprintf("badge:%d", n)))
		require.NoError(t, err)
	}

	items, total, err := inbox.List(ctx, "user-1", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(maxStored), total)
	require.Len(t, items, 3)
	assert.Equal(t, fmt.Sprintf("badge:%d", maxStored+4), items[0].ID, "newest first")
}

func TestDeliver_PublishesToUserChannel(t *testing.T) {
	_, _, inbox := newTestInbox(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := inbox.Subscribe(ctx, "user-1")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	_, err = inbox.Deliver(ctx, notification("user-1", "badge:b-2"))
	require.NoError(t, err)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, Channel("user-1"), msg.Channel)
	assert.Contains(t, msg.Payload, `"badge:b-2"`)
}

func TestMute(t *testing.T) {
	_, _, inbox := newTestInbox(t)
	ctx := context.Background()

	muted, err := inbox.IsMuted(ctx, "user-1", "pool-1")
	require.NoError(t, err)
	assert.False(t, muted)

	require.NoError(t, inbox.SetMuted(ctx, "user-1", "pool-1", true))
	muted, err = inbox.IsMuted(ctx, "user-1", "pool-1")
	require.NoError(t, err)
	assert.True(t, muted)

	require.NoError(t, inbox.SetMuted(ctx, "user-1", "pool-1", false))
	muted, err = inbox.IsMuted(ctx, "user-1", "pool-1")
	require.NoError(t, err)
	assert.False(t, muted)
}
