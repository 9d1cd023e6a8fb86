package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/notification/internal/entity"
	"pool-fund/services/notification/internal/repo/persistent"
)

var (
	ErrInvalidPool      = errors.New("pool id is required")
	ErrQueueUnavailable = errors.New("queue client is not available")
)

const handlerTimeout = 30 * time.Second

// Inbox stores and pushes notifications. Deliver reports false for a
// notification ID the user already received.
type Inbox interface {
	Deliver(ctx context.Context, n *entity.Notification) (bool, error)
	List(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error)
	IsMuted(ctx context.Context, userID, poolID string) (bool, error)
	SetMuted(ctx context.Context, userID, poolID string, muted bool) error
}

type QueueInspector interface {
	GetQueueLength(queueName string) (int, error)
}

type NotificationUseCase interface {
	HandleEvent(routingKey string, body []byte) error
	NotifyMilestone(ctx context.Context, msg queue.MilestoneReached) (int, error)
	NotifyBadge(ctx context.Context, msg queue.BadgeAwarded) (bool, error)
	GetNotifications(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error)
	IsPoolMuted(ctx context.Context, userID, poolID string) (bool, error)
	SetPoolMuted(ctx context.Context, userID, poolID string, muted bool) error
	QueueLength() (int, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	inbox            Inbox
	queueInspector   QueueInspector
	logger           *logger.Logger
}

// NewNotificationUseCase builds the usecase; queueInspector may be nil.
func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, inbox Inbox, queueInspector QueueInspector, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		inbox:            inbox,
		queueInspector:   queueInspector,
		logger:           logger,
	}
}

// HandleEvent is the notification queue consumer. Messages that can never be
// processed are logged and acknowledged; storage failures are returned so the
// delivery is retried.
func (uc *notificationUseCase) HandleEvent(routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	switch routingKey {
	case queue.RoutingMilestoneReached:
		var msg queue.MilestoneReached
		if err := json.Unmarshal(body, &msg); err != nil || msg.PoolID == "" {
			uc.logger.Error("[NOTIFICATION HANDLER] Dropping invalid %s message: %s", routingKey, string(body))
			return nil
		}
		_, err := uc.NotifyMilestone(ctx, msg)
		return err
	case queue.RoutingBadgeAwarded:
		var msg queue.BadgeAwarded
		if err := json.Unmarshal(body, &msg); err != nil || msg.UserID == "" || msg.BadgeName == "" {
			uc.logger.Error("[NOTIFICATION HANDLER] Dropping invalid %s message: %s", routingKey, string(body))
			return nil
		}
		_, err := uc.NotifyBadge(ctx, msg)
		return err
	default:
		uc.logger.Warn("[NOTIFICATION HANDLER] Ignoring message with routing key %q", routingKey)
		return nil
	}
}

// NotifyMilestone tells every member of the pool, except those who muted it,
// that the pool crossed a goal threshold.
func (uc *notificationUseCase) NotifyMilestone(ctx context.Context, msg queue.MilestoneReached) (int, error) {
	if msg.PoolID == "" {
		return 0, ErrInvalidPool
	}

	poolName, err := uc.notificationRepo.GetPoolName(ctx, msg.PoolID)
	if err != nil {
		if !errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Error("[NOTIFICATION HANDLER] Failed to load pool %s: %v", msg.PoolID, err)
			return 0, fmt.Errorf("failed to load pool: %w", err)
		}
		uc.logger.Warn("[NOTIFICATION HANDLER] Pool %s not found, using its id in the message", msg.PoolID)
		poolName = msg.PoolID
	}

	members, err := uc.notificationRepo.GetPoolMembers(ctx, msg.PoolID)
	if err != nil {
		uc.logger.Error("[NOTIFICATION HANDLER] Failed to get members of pool %s: %v", msg.PoolID, err)
		return 0, fmt.Errorf("failed to get pool members: %w", err)
	}

	reachedAt := msg.ReachedAt
	if reachedAt.IsZero() {
		reachedAt = time.Now().UTC()
	}

	sent, skipped := 0, 0
	for _, userID := range members {
		muted, err := uc.inbox.IsMuted(ctx, userID, msg.PoolID)
		if err != nil {
			uc.logger.Warn("[NOTIFICATION HANDLER] Failed to check settings for user %s, pool %s: %v (assuming unmuted)", userID, msg.PoolID, err)
		} else if muted {
			skipped++
			continue
		}

		notification := &entity.Notification{
			ID:        fmt.Sprintf("milestone:%s:%d", msg.PoolID, msg.Percentage),
			UserID:    userID,
			Title:     "Milestone reached!",
			Message:   fmt.Sprintf("%s is %d%% of the way to its goal", poolName, msg.Percentage),
			Type:      entity.TypeMilestoneReached,
			CreatedAt: reachedAt.UTC().Format(time.RFC3339),
			Data: map[string]interface{}{
				"pool_id":    msg.PoolID,
				"percentage": msg.Percentage,
			},
		}
		if msg.TriggeredBy != "" {
			notification.Data["triggered_by"] = msg.TriggeredBy
		}

		delivered, err := uc.inbox.Deliver(ctx, notification)
		if err != nil {
			uc.logger.Error("[NOTIFICATION HANDLER] Failed to notify user %s: %v", userID, err)
			return sent, fmt.Errorf("failed to deliver notification: %w", err)
		}
		if delivered {
			sent++
		}
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Pool %s reached %d%%: sent=%d, muted=%d, members=%d", msg.PoolID, msg.Percentage, sent, skipped, len(members))
	return sent, nil
}

func (uc *notificationUseCase) NotifyBadge(ctx context.Context, msg queue.BadgeAwarded) (bool, error) {
	earnedAt := msg.EarnedAt
	if earnedAt.IsZero() {
		earnedAt = time.Now().UTC()
	}

	id := msg.BadgeID
	if id == "" {
		id = fmt.Sprintf("%s:%s", msg.BadgeType, msg.BadgeName)
	}

	notification := &entity.Notification{
		ID:        "badge:" + id,
		UserID:    msg.UserID,
		Title:     "New badge!",
		Message:   fmt.Sprintf("You earned the %s badge", msg.BadgeName),
		Type:      entity.TypeBadgeAwarded,
		CreatedAt: earnedAt.UTC().Format(time.RFC3339),
		Data: map[string]interface{}{
			"badge_type": msg.BadgeType,
			"badge_name": msg.BadgeName,
		},
	}
	if msg.PoolID != nil {
		notification.Data["pool_id"] = *msg.PoolID
	}

	delivered, err := uc.inbox.Deliver(ctx, notification)
	if err != nil {
		uc.logger.Error("[NOTIFICATION HANDLER] Failed to send badge notification to user %s: %v", msg.UserID, err)
		return false, fmt.Errorf("failed to deliver notification: %w", err)
	}
	if delivered {
		uc.logger.Info("[NOTIFICATION HANDLER] Sent badge notification %q to user %s", msg.BadgeName, msg.UserID)
	}
	return delivered, nil
}

func (uc *notificationUseCase) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error) {
	notifications, total, err := uc.inbox.List(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to get notifications for user %s: %v", userID, err)
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, total, nil
}

func (uc *notificationUseCase) IsPoolMuted(ctx context.Context, userID, poolID string) (bool, error) {
	if poolID == "" {
		return false, ErrInvalidPool
	}
	return uc.inbox.IsMuted(ctx, userID, poolID)
}

func (uc *notificationUseCase) SetPoolMuted(ctx context.Context, userID, poolID string, muted bool) error {
	if poolID == "" {
		return ErrInvalidPool
	}
	if err := uc.inbox.SetMuted(ctx, userID, poolID, muted); err != nil {
		return fmt.Errorf("failed to update notification settings: %w", err)
	}
	uc.logger.Info("User %s set muted=%t for pool %s", userID, muted, poolID)
	return nil
}

func (uc *notificationUseCase) QueueLength() (int, error) {
	if uc.queueInspector == nil {
		return 0, ErrQueueUnavailable
	}
	return uc.queueInspector.GetQueueLength(queue.NotificationQueueName)
}
