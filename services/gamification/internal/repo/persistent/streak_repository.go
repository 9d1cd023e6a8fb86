package persistent

import (
	"context"
	"errors"
	"time"

	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/model"

	"gorm.io/gorm"
)

// StreakMutation receives the stored streak (nil when the scope has none) and
// returns the streak to persist, or changed=false to leave storage untouched.
// An error from it rolls the update back.
type StreakMutation func(current *entity.Streak) (next *entity.Streak, changed bool, err error)

type StreakRepository interface {
	// UpdateStreak runs fn while holding the (user, pool) scope exclusively and
	// returns the streak as stored afterwards.
	UpdateStreak(ctx context.Context, userID string, poolID *string, fn StreakMutation) (*entity.Streak, bool, error)
	GetStreak(ctx context.Context, userID string, poolID *string) (*entity.Streak, error)
	ListStreaks(ctx context.Context, userID string) ([]*entity.Streak, error)
}

type streakRepository struct {
	db *gorm.DB
}

func NewStreakRepository(db *gorm.DB) StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) UpdateStreak(ctx context.Context, userID string, poolID *string, fn StreakMutation) (*entity.Streak, bool, error) {
	var (
		result  *entity.Streak
		changed bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockScope(tx, "streak:"+entity.ScopeKey(userID, poolID)); err != nil {
			return err
		}

		var current *entity.Streak
		var streakModel model.StreakModel
		err := wherePool(tx.Where("user_id = ?", userID), poolID).First(&streakModel).Error
		switch {
		case err == nil:
			current = ToStreakEntity(&streakModel)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		next, ok, err := fn(current)
		if err != nil {
			return err
		}
		if !ok {
			result = current
			return nil
		}

		now := time.Now().UTC()
		if current == nil {
			created := ToStreakModel(next)
			if err := tx.Create(created).Error; err != nil {
				return err
			}
			result = ToStreakEntity(created)
			changed = true
			return nil
		}

		err = tx.Model(&model.StreakModel{}).Where("id = ?", current.ID).
			Updates(map[string]interface{}{
				"streak_count":           next.Count,
				"longest_streak":         next.LongestCount,
				"last_contribution_date": next.LastActivityDate,
				"updated_at":             now,
			}).Error
		if err != nil {
			return err
		}
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = now
		result = next
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, changed, nil
}

func (r *streakRepository) GetStreak(ctx context.Context, userID string, poolID *string) (*entity.Streak, error) {
	var streakModel model.StreakModel
	err := wherePool(r.db.WithContext(ctx).Where("user_id = ?", userID), poolID).First(&streakModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ToStreakEntity(&streakModel), nil
}

func (r *streakRepository) ListStreaks(ctx context.Context, userID string) ([]*entity.Streak, error) {
	var streakModels []model.StreakModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pool_id NULLS FIRST").
		Find(&streakModels).Error
	if err != nil {
		return nil, err
	}

	streaks := make([]*entity.Streak, len(streakModels))
	for i := range streakModels {
		streaks[i] = ToStreakEntity(&streakModels[i])
	}
	return streaks, nil
}
