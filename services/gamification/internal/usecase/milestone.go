package usecase

import (
	"context"
	"errors"
	"fmt"

	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/realtime"
	"pool-fund/services/gamification/internal/repo/persistent"
)

var (
	ErrGoalUndefined = errors.New("pool has no positive goal amount")
	ErrPoolNotFound  = errors.New("pool not found")
)

// Broadcaster pushes a message to everyone listening on channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, channel string, message interface{}) error
}

type MilestoneUseCase interface {
	CheckMilestones(ctx context.Context, poolID, triggeredBy string) (*entity.MilestoneCheck, error)
	ListMilestones(ctx context.Context, poolID string) ([]*entity.Milestone, error)
}

type milestoneUseCase struct {
	milestoneRepo persistent.MilestoneRepository
	badges        BadgeUseCase
	broadcaster   Broadcaster
	publisher     queue.Publisher
	logger        *logger.Logger
}

// NewMilestoneUseCase wires milestone detection. broadcaster and publisher may be nil.
func NewMilestoneUseCase(
	milestoneRepo persistent.MilestoneRepository,
	badges BadgeUseCase,
	broadcaster Broadcaster,
	publisher queue.Publisher,
	logger *logger.Logger,
) MilestoneUseCase {
	return &milestoneUseCase{
		milestoneRepo: milestoneRepo,
		badges:        badges,
		broadcaster:   broadcaster,
		publisher:     publisher,
		logger:        logger,
	}
}

// CheckMilestones records every threshold the pool has reached that was not
// recorded before. Milestones are never removed, even if the balance drops.
func (uc *milestoneUseCase) CheckMilestones(ctx context.Context, poolID, triggeredBy string) (*entity.MilestoneCheck, error) {
	progress, err := uc.milestoneRepo.GetPoolProgress(ctx, poolID)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		uc.logger.Error("Failed to load pool %s: %v", poolID, err)
		return nil, fmt.Errorf("failed to get pool progress: %w", err)
	}
	if progress.GoalAmountCents <= 0 {
		return nil, fmt.Errorf("pool %s: %w", poolID, ErrGoalUndefined)
	}

	check := &entity.MilestoneCheck{
		PoolID:          poolID,
		ProgressPercent: progress.Percent(),
		NewMilestones:   []*entity.Milestone{},
	}

	for _, threshold := range entity.MilestoneThresholds {
		if !progress.Reached(threshold) {
			break
		}

		milestone := &entity.Milestone{
			PoolID:              poolID,
			Percentage:          threshold,
			CelebrationUnlocked: true,
		}
		percentage := milestone.Percentage
		created, err := uc.milestoneRepo.CreateMilestoneIfAbsent(ctx, milestone, func() error {
			return uc.awardMilestone(ctx, poolID, percentage, triggeredBy)
		})
		if err != nil {
			uc.logger.Error("Failed to record %d%% milestone for pool %s: %v", threshold, poolID, err)
			return nil, fmt.Errorf("failed to create milestone: %w", err)
		}
		if !created {
			continue
		}

		uc.logger.Info("Pool %s reached %d%% of its goal", poolID, threshold)
		check.NewMilestones = append(check.NewMilestones, milestone)
	}

	for _, milestone := range check.NewMilestones {
		uc.announce(ctx, milestone, triggeredBy)
	}

	return check, nil
}

// awardMilestone runs inside the milestone insert; an error leaves the
// milestone unrecorded so the next check retries both.
func (uc *milestoneUseCase) awardMilestone(ctx context.Context, poolID string, percentage int, triggeredBy string) error {
	if triggeredBy == "" {
		return nil
	}
	pool := poolID
	_, err := uc.badges.Award(ctx, triggeredBy, entity.BadgeTypeMilestone, entity.MilestoneBadges[percentage], &pool)
	return err
}

func (uc *milestoneUseCase) ListMilestones(ctx context.Context, poolID string) ([]*entity.Milestone, error) {
	milestones, err := uc.milestoneRepo.ListMilestones(ctx, poolID)
	if err != nil {
		uc.logger.Error("Failed to list milestones for pool %s: %v", poolID, err)
		return nil, fmt.Errorf("failed to get milestones: %w", err)
	}
	return milestones, nil
}

func (uc *milestoneUseCase) announce(ctx context.Context, milestone *entity.Milestone, triggeredBy string) {
	if uc.broadcaster != nil {
		celebration := entity.Celebration{
			Type:        "milestone",
			PoolID:      milestone.PoolID,
			Percentage:  milestone.Percentage,
			TriggeredBy: triggeredBy,
			ReachedAt:   milestone.ReachedAt,
		}
		if err := uc.broadcaster.Broadcast(ctx, realtime.CelebrationChannel(milestone.PoolID), celebration); err != nil {
			uc.logger.Error("Failed to broadcast milestone for pool %s: %v", milestone.PoolID, err)
		}
	}

	if uc.publisher != nil {
		msg := queue.MilestoneReached{
			PoolID:      milestone.PoolID,
			Percentage:  milestone.Percentage,
			TriggeredBy: triggeredBy,
			ReachedAt:   milestone.ReachedAt,
		}
		if err := uc.publisher.Publish(queue.RoutingMilestoneReached, msg); err != nil {
			uc.logger.Error("Failed to publish milestone for pool %s: %v", milestone.PoolID, err)
		}
	}
}
