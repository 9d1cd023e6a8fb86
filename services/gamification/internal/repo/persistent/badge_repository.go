package persistent

import (
	"context"
	"time"

	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	// CreateBadgeIfAbsent inserts badge unless the (user, type, name, pool) key
	// already exists. It reports whether a row was created.
	CreateBadgeIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error)
	HasBadge(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (bool, error)
	ListBadges(ctx context.Context, userID string) ([]*entity.Badge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) CreateBadgeIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := "badge:" + entity.ScopeKey(badge.UserID, badge.PoolID) + ":" + badge.BadgeType + ":" + badge.BadgeName
		if err := lockScope(tx, key); err != nil {
			return err
		}

		exists, err := badgeExists(tx, badge.UserID, badge.BadgeType, badge.BadgeName, badge.PoolID)
		if err != nil || exists {
			return err
		}

		badgeModel := ToBadgeModel(badge)
		if badgeModel.EarnedAt.IsZero() {
			badgeModel.EarnedAt = time.Now().UTC()
		}
		// The expression index on COALESCE(pool_id) backs up the lock.
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(badgeModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		badge.ID = badgeModel.ID
		badge.EarnedAt = badgeModel.EarnedAt
		created = true
		return nil
	})
	return created, err
}

func (r *badgeRepository) HasBadge(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (bool, error) {
	return badgeExists(r.db.WithContext(ctx), userID, badgeType, badgeName, poolID)
}

func (r *badgeRepository) ListBadges(ctx context.Context, userID string) ([]*entity.Badge, error) {
	var badgeModels []model.BadgeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&badgeModels).Error
	if err != nil {
		return nil, err
	}

	badges := make([]*entity.Badge, len(badgeModels))
	for i := range badgeModels {
		badges[i] = ToBadgeEntity(&badgeModels[i])
	}
	return badges, nil
}

func badgeExists(db *gorm.DB, userID, badgeType, badgeName string, poolID *string) (bool, error) {
	var count int64
	query := db.Model(&model.BadgeModel{}).
		Where("user_id = ? AND badge_type = ? AND badge_name = ?", userID, badgeType, badgeName)
	if err := wherePool(query, poolID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
