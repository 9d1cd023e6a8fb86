package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/repo/persistent"
)

var ErrInvalidUser = errors.New("user id is required")

type StreakUseCase interface {
	RecordActivity(ctx context.Context, userID string, poolID *string, activityDate time.Time) (*entity.StreakSnapshot, error)
	GetStreak(ctx context.Context, userID string, poolID *string) (*entity.StreakSnapshot, error)
	ListStreaks(ctx context.Context, userID string) ([]*entity.StreakSnapshot, error)
}

type streakUseCase struct {
	streakRepo persistent.StreakRepository
	badges     BadgeUseCase
	logger     *logger.Logger
}

func NewStreakUseCase(streakRepo persistent.StreakRepository, badges BadgeUseCase, logger *logger.Logger) StreakUseCase {
	return &streakUseCase{
		streakRepo: streakRepo,
		badges:     badges,
		logger:     logger,
	}
}

// advanceStreak applies one day of activity to current. It returns changed=false
// for a repeat on the same day and for a day earlier than the last recorded one.
func advanceStreak(current *entity.Streak, userID string, poolID *string, day time.Time) (*entity.Streak, bool, int) {
	day = entity.DateOf(day)
	if current == nil {
		return &entity.Streak{
			UserID:           userID,
			PoolID:           poolID,
			Count:            1,
			LongestCount:     1,
			LastActivityDate: day,
		}, true, 1
	}

	gap := entity.DaysBetween(current.LastActivityDate, day)
	if gap <= 0 {
		return current, false, gap
	}

	next := *current
	if gap == 1 {
		next.Count++
	} else {
		next.Count = 1
	}
	if next.Count > next.LongestCount {
		next.LongestCount = next.Count
	}
	next.LastActivityDate = day
	return &next, true, gap
}

func (uc *streakUseCase) RecordActivity(ctx context.Context, userID string, poolID *string, activityDate time.Time) (*entity.StreakSnapshot, error) {
	if userID == "" {
		return nil, ErrInvalidUser
	}
	scope := entity.ScopeKey(userID, poolID)

	// The badge is awarded inside the streak update so a failed award rolls the
	// day back and a redelivery of the same activity earns it again.
	var granted []string
	streak, changed, err := uc.streakRepo.UpdateStreak(ctx, userID, poolID, func(current *entity.Streak) (*entity.Streak, bool, error) {
		granted = nil
		next, ok, gap := advanceStreak(current, userID, poolID, activityDate)
		if gap < 0 {
			uc.logger.Warn("Activity on %s for %s predates last activity %s, ignoring",
				activityDate.Format(entity.DateLayout), scope, current.LastActivityDate.Format(entity.DateLayout))
		}
		if !ok {
			return next, false, nil
		}

		// Exact match only: a count that skips past a key never earns it.
		if name, hit := entity.StreakBadges[next.Count]; hit {
			result, err := uc.badges.Award(ctx, userID, entity.BadgeTypeStreak, name, poolID)
			if err != nil {
				return nil, false, err
			}
			if result.Granted {
				granted = append(granted, name)
			}
		}
		return next, true, nil
	})
	if err != nil {
		uc.logger.Error("Failed to record activity for %s: %v", scope, err)
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	snapshot := streak.Snapshot()
	snapshot.Changed = changed
	if changed {
		uc.logger.Debug("Streak %s now %d (longest %d)", scope, streak.Count, streak.LongestCount)
		snapshot.BadgesGranted = granted
	}
	return snapshot, nil
}

func (uc *streakUseCase) GetStreak(ctx context.Context, userID string, poolID *string) (*entity.StreakSnapshot, error) {
	streak, err := uc.streakRepo.GetStreak(ctx, userID, poolID)
	if errors.Is(err, persistent.ErrNotFound) {
		return &entity.StreakSnapshot{UserID: userID, PoolID: poolID}, nil
	}
	if err != nil {
		uc.logger.Error("Failed to get streak for %s: %v", entity.ScopeKey(userID, poolID), err)
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return streak.Snapshot(), nil
}

func (uc *streakUseCase) ListStreaks(ctx context.Context, userID string) ([]*entity.StreakSnapshot, error) {
	streaks, err := uc.streakRepo.ListStreaks(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list streaks for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get streaks: %w", err)
	}

	snapshots := make([]*entity.StreakSnapshot, len(streaks))
	for i, streak := range streaks {
		snapshots[i] = streak.Snapshot()
	}
	return snapshots, nil
}
