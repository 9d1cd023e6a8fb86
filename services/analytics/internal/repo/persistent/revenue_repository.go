package persistent

import (
	"context"

	"pool-fund/services/analytics/internal/entity"
	"pool-fund/services/analytics/internal/model"

	"gorm.io/gorm"
)

const snapshotBatchSize = 500

type RevenueRepository interface {
	ListUserSnapshots(ctx context.Context) ([]entity.UserSnapshot, error)
}

type revenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

func (r *revenueRepository) ListUserSnapshots(ctx context.Context) ([]entity.UserSnapshot, error) {
	var (
		batch     []model.UserModel
		snapshots []entity.UserSnapshot
	)
	result := r.db.WithContext(ctx).
		Select("id", "tier", "pooled_balance_cents", "monthly_withdrawals").
		FindInBatches(&batch, snapshotBatchSize, func(tx *gorm.DB, _ int) error {
			snapshots = append(snapshots, ToUserSnapshots(batch)...)
			return nil
		})
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}
