package persistent

import (
	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/model"
)

func ToStreakEntity(m *model.StreakModel) *entity.Streak {
	if m == nil {
		return nil
	}

	return &entity.Streak{
		ID:               m.ID,
		UserID:           m.UserID,
		PoolID:           m.PoolID,
		Count:            m.StreakCount,
		LongestCount:     m.LongestStreak,
		LastActivityDate: entity.DateOf(m.LastContributionDate),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToStreakModel(e *entity.Streak) *model.StreakModel {
	if e == nil {
		return nil
	}

	return &model.StreakModel{
		ID:                   e.ID,
		UserID:               e.UserID,
		PoolID:               e.PoolID,
		StreakCount:          e.Count,
		LongestStreak:        e.LongestCount,
		LastContributionDate: e.LastActivityDate,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func ToBadgeEntity(m *model.BadgeModel) *entity.Badge {
	if m == nil {
		return nil
	}

	return &entity.Badge{
		ID:        m.ID,
		UserID:    m.UserID,
		BadgeType: m.BadgeType,
		BadgeName: m.BadgeName,
		PoolID:    m.PoolID,
		EarnedAt:  m.EarnedAt,
	}
}

func ToBadgeModel(e *entity.Badge) *model.BadgeModel {
	if e == nil {
		return nil
	}

	return &model.BadgeModel{
		ID:        e.ID,
		UserID:    e.UserID,
		BadgeType: e.BadgeType,
		BadgeName: e.BadgeName,
		PoolID:    e.PoolID,
		EarnedAt:  e.EarnedAt,
	}
}

func ToMilestoneEntity(m *model.MilestoneModel) *entity.Milestone {
	if m == nil {
		return nil
	}

	return &entity.Milestone{
		PoolID:              m.PoolID,
		Percentage:          m.MilestonePercentage,
		ReachedAt:           m.ReachedAt,
		CelebrationUnlocked: m.CelebrationUnlocked,
	}
}

func ToMilestoneModel(e *entity.Milestone) *model.MilestoneModel {
	if e == nil {
		return nil
	}

	return &model.MilestoneModel{
		PoolID:              e.PoolID,
		MilestonePercentage: e.Percentage,
		ReachedAt:           e.ReachedAt,
		CelebrationUnlocked: e.CelebrationUnlocked,
	}
}
