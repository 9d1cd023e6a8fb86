package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/gamification/internal/entity"
)

var ErrInvalidContribution = errors.New("contribution needs a user and a pool")

// consumerTimeout bounds the work done for one queue delivery.
const consumerTimeout = 30 * time.Second

type ContributionUseCase interface {
	CompleteContribution(ctx context.Context, userID, poolID string, activityDate time.Time) (*entity.ContributionResult, error)
	HandleCaptured(body []byte) error
}

type contributionUseCase struct {
	streaks    StreakUseCase
	milestones MilestoneUseCase
	logger     *logger.Logger
}

func NewContributionUseCase(streaks StreakUseCase, milestones MilestoneUseCase, logger *logger.Logger) ContributionUseCase {
	return &contributionUseCase{
		streaks:    streaks,
		milestones: milestones,
		logger:     logger,
	}
}

// CompleteContribution advances the pool and global streaks, then checks the
// pool for newly reached milestones on behalf of the contributor.
func (uc *contributionUseCase) CompleteContribution(ctx context.Context, userID, poolID string, activityDate time.Time) (*entity.ContributionResult, error) {
	if userID == "" || poolID == "" {
		return nil, ErrInvalidContribution
	}

	poolStreak, err := uc.streaks.RecordActivity(ctx, userID, &poolID, activityDate)
	if err != nil {
		return nil, err
	}
	globalStreak, err := uc.streaks.RecordActivity(ctx, userID, nil, activityDate)
	if err != nil {
		return nil, err
	}

	result := &entity.ContributionResult{
		PoolStreak:   poolStreak,
		GlobalStreak: globalStreak,
	}

	check, err := uc.milestones.CheckMilestones(ctx, poolID, userID)
	switch {
	case err == nil:
		result.Milestones = check
	case errors.Is(err, ErrGoalUndefined), errors.Is(err, ErrPoolNotFound):
		uc.logger.Warn("Skipping milestone check for pool %s: %v", poolID, err)
	default:
		return nil, err
	}

	return result, nil
}

// HandleCaptured consumes contribution.captured messages. Returning an error
// requeues the delivery, so bad payloads are logged and acknowledged.
func (uc *contributionUseCase) HandleCaptured(body []byte) error {
	var msg queue.ContributionCaptured
	if err := json.Unmarshal(body, &msg); err != nil {
		uc.logger.Error("Dropping undecodable contribution message: %v", err)
		return nil
	}
	if msg.UserID == "" || msg.PoolID == "" {
		uc.logger.Error("Dropping contribution message %s without user or pool", msg.TransactionID)
		return nil
	}

	activityDate := msg.CapturedAt
	if activityDate.IsZero() {
		activityDate = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), consumerTimeout)
	defer cancel()

	result, err := uc.CompleteContribution(ctx, msg.UserID, msg.PoolID, activityDate)
	if err != nil {
		return fmt.Errorf("failed to process contribution %s: %w", msg.TransactionID, err)
	}

	uc.logger.Info("Contribution %s processed: pool streak %d, global streak %d",
		msg.TransactionID, result.PoolStreak.Count, result.GlobalStreak.Count)
	return nil
}
