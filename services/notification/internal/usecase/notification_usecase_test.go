package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/notification/internal/entity"
	"pool-fund/services/notification/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationRepository struct {
	pools   map[string]string
	members map[string][]string
	err     error
}

func (s *stubNotificationRepository) GetPoolName(ctx context.Context, poolID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	name, ok := s.pools[poolID]
	if !ok {
		return "", persistent.ErrNotFound
	}
	return name, nil
}

func (s *stubNotificationRepository) GetPoolMembers(ctx context.Context, poolID string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.members[poolID], nil
}

type memoryInbox struct {
	mu         sync.Mutex
	seen       map[string]bool
	byUser     map[string][]entity.Notification
	muted      map[string]bool
	deliverErr error
}

func newMemoryInbox() *memoryInbox {
	return &memoryInbox{
		seen:   make(map[string]bool),
		byUser: make(map[string][]entity.Notification),
		muted:  make(map[string]bool),
	}
}

func (m *memoryInbox) Deliver(ctx context.Context, n *entity.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deliverErr != nil {
		return false, m.deliverErr
	}
	key := n.UserID + "|" + n.ID
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	m.byUser[n.UserID] = append([]entity.Notification{*n}, m.byUser[n.UserID]...)
	return true, nil
}

func (m *memoryInbox) List(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.byUser[userID]
	if offset >= len(all) {
		return []entity.Notification{}, int64(len(all)), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (m *memoryInbox) IsMuted(ctx context.Context, userID, poolID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted[userID+"|"+poolID], nil
}

func (m *memoryInbox) SetMuted(ctx context.Context, userID, poolID string, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted[userID+"|"+poolID] = muted
	return nil
}

func (m *memoryInbox) count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUser[userID])
}

type stubQueueInspector struct {
	length int
}

func (s stubQueueInspector) GetQueueLength(queueName string) (int, error) {
	return s.length, nil
}

func newTestUseCase() (NotificationUseCase, *memoryInbox, *stubNotificationRepository) {
	repo := &stubNotificationRepository{
		pools:   map[string]string{"pool-1": "Beach House"},
		members: map[string][]string{"pool-1": {"alice", "bob", "carol"}},
	}
	inbox := newMemoryInbox()
	return NewNotificationUseCase(repo, inbox, nil, logger.New()), inbox, repo
}

func TestNotifyMilestone_NotifiesMembers(t *testing.T) {
	uc, inbox, _ := newTestUseCase()

	sent, err := uc.NotifyMilestone(context.Background(), queue.MilestoneReached{
		PoolID: "pool-1", Percentage: 50, TriggeredBy: "alice", ReachedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, sent)

	items, total, err := uc.GetNotifications(context.Background(), "bob", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, entity.TypeMilestoneReached, items[0].Type)
	assert.Equal(t, "Beach House is 50% of the way to its goal", items[0].Message)
	assert.Equal(t, "2026-03-01T12:00:00Z", items[0].CreatedAt)
	assert.Equal(t, "alice", items[0].Data["triggered_by"])
	assert.Equal(t, 1, inbox.count("alice"))
}

func TestNotifyMilestone_RedeliveryIsSilent(t *testing.T) {
	uc, inbox, _ := newTestUseCase()
	msg := queue.MilestoneReached{PoolID: "pool-1", Percentage: 25}

	_, err := uc.NotifyMilestone(context.Background(), msg)
	require.NoError(t, err)
	sent, err := uc.NotifyMilestone(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, 0, sent)
	assert.Equal(t, 1, inbox.count("carol"))
}

func TestNotifyMilestone_SkipsMutedMembers(t *testing.T) {
	uc, inbox, _ := newTestUseCase()
	require.NoError(t, uc.SetPoolMuted(context.Background(), "bob", "pool-1", true))

	sent, err := uc.NotifyMilestone(context.Background(), queue.MilestoneReached{PoolID: "pool-1", Percentage: 75})

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 0, inbox.count("bob"))

	muted, err := uc.IsPoolMuted(context.Background(), "bob", "pool-1")
	require.NoError(t, err)
	assert.True(t, muted)
}

func TestNotifyMilestone_UnknownPoolUsesID(t *testing.T) {
	uc, inbox, repo := newTestUseCase()
	repo.members["pool-2"] = []string{"dave"}

	_, err := uc.NotifyMilestone(context.Background(), queue.MilestoneReached{PoolID: "pool-2", Percentage: 100})

	require.NoError(t, err)
	items, _, _ := inbox.List(context.Background(), "dave", 10, 0)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "pool-2")
}

func TestNotifyMilestone_RepositoryError(t *testing.T) {
	uc, _, repo := newTestUseCase()
	repo.err = errors.New("db down")

	_, err := uc.NotifyMilestone(context.Background(), queue.MilestoneReached{PoolID: "pool-1", Percentage: 25})

	assert.Error(t, err)
}

func TestNotifyBadge(t *testing.T) {
	uc, inbox, _ := newTestUseCase()
	poolID := "pool-1"
	msg := queue.BadgeAwarded{BadgeID: "b-1", UserID: "alice", BadgeType: "streak", BadgeName: "Week Warrior", PoolID: &poolID}

	delivered, err := uc.NotifyBadge(context.Background(), msg)
	require.NoError(t, err)
	assert.True(t, delivered)

	delivered, err = uc.NotifyBadge(context.Background(), msg)
	require.NoError(t, err)
	assert.False(t, delivered)

	items, _, _ := inbox.List(context.Background(), "alice", 10, 0)
	require.Len(t, items, 1)
	assert.Equal(t, "You earned the Week Warrior badge", items[0].Message)
	assert.Equal(t, "pool-1", items[0].Data["pool_id"])
}

func TestNotifyBadge_DeliveryError(t *testing.T) {
	uc, inbox, _ := newTestUseCase()
	inbox.deliverErr = errors.New("redis down")

	_, err := uc.NotifyBadge(context.Background(), queue.BadgeAwarded{UserID: "alice", BadgeName: "Goal Crusher"})

	assert.Error(t, err)
}

func TestHandleEvent(t *testing.T) {
	uc, inbox, _ := newTestUseCase()

	milestone, _ := json.Marshal(queue.MilestoneReached{PoolID: "pool-1", Percentage: 25})
	badge, _ := json.Marshal(queue.BadgeAwarded{BadgeID: "b-9", UserID: "carol", BadgeType: "milestone", BadgeName: "Quarter Way There"})

	require.NoError(t, uc.HandleEvent(queue.RoutingMilestoneReached, milestone))
	require.NoError(t, uc.HandleEvent(queue.RoutingBadgeAwarded, badge))

	assert.Equal(t, 2, inbox.count("carol"))
	assert.Equal(t, 1, inbox.count("alice"))
}

func TestHandleEvent_DropsUnprocessableMessages(t *testing.T) {
	uc, inbox, _ := newTestUseCase()

	assert.NoError(t, uc.HandleEvent(queue.RoutingMilestoneReached, []byte(`{"percentage":25}`)))
	assert.NoError(t, uc.HandleEvent(queue.RoutingBadgeAwarded, []byte(`{"user_id":"alice"}`)))
	assert.NoError(t, uc.HandleEvent(queue.RoutingContributionCaptured, []byte(`{}`)))
	assert.NoError(t, uc.HandleEvent(queue.RoutingBadgeAwarded, []byte(`[1,2]`)))

	assert.Equal(t, 0, inbox.count("alice"))
}

func TestHandleEvent_StorageErrorRequeues(t *testing.T) {
	uc, _, repo := newTestUseCase()
	repo.err = errors.New("db down")

	body, _ := json.Marshal(queue.MilestoneReached{PoolID: "pool-1", Percentage: 25})

	assert.Error(t, uc.HandleEvent(queue.RoutingMilestoneReached, body))
}

func TestSetPoolMuted_RequiresPool(t *testing.T) {
	uc, _, _ := newTestUseCase()

	assert.ErrorIs(t, uc.SetPoolMuted(context.Background(), "alice", "", true), ErrInvalidPool)
	_, err := uc.IsPoolMuted(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidPool)
}

func TestQueueLength(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.QueueLength()
	assert.ErrorIs(t, err, ErrQueueUnavailable)

	withQueue := NewNotificationUseCase(&stubNotificationRepository{}, newMemoryInbox(), stubQueueInspector{length: 7}, logger.New())
	length, err := withQueue.QueueLength()
	require.NoError(t, err)
	assert.Equal(t, 7, length)
}
