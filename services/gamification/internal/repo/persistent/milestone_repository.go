package persistent

import (
	"context"
	"errors"
	"time"

	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MilestoneRepository interface {
	GetPoolProgress(ctx context.Context, poolID string) (*entity.PoolProgress, error)
	// CreateMilestoneIfAbsent relies on the (pool_id, milestone_percentage) key,
	// so concurrent checks for one pool create each row exactly once. onCreate
	// runs in the inserting transaction only when the row is new; an error from
	// it rolls the insert back.
	CreateMilestoneIfAbsent(ctx context.Context, milestone *entity.Milestone, onCreate func() error) (bool, error)
	ListMilestones(ctx context.Context, poolID string) ([]*entity.Milestone, error)
}

type milestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) GetPoolProgress(ctx context.Context, poolID string) (*entity.PoolProgress, error) {
	var poolModel model.PoolModel
	if err := r.db.WithContext(ctx).Where("id = ?", poolID).First(&poolModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity.PoolProgress{
		PoolID:             poolModel.ID,
		Name:               poolModel.Name,
		GoalAmountCents:    poolModel.GoalAmountCents,
		CurrentAmountCents: poolModel.CurrentAmountCents,
	}, nil
}

func (r *milestoneRepository) CreateMilestoneIfAbsent(ctx context.Context, milestone *entity.Milestone, onCreate func() error) (bool, error) {
	milestoneModel := ToMilestoneModel(milestone)
	if milestoneModel.ReachedAt.IsZero() {
		milestoneModel.ReachedAt = time.Now().UTC()
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pool_id"}, {Name: "milestone_percentage"}},
			DoNothing: true,
		}).Create(milestoneModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if onCreate != nil {
			if err := onCreate(); err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	if err != nil || !created {
		return false, err
	}
	milestone.ReachedAt = milestoneModel.ReachedAt
	return true, nil
}

func (r *milestoneRepository) ListMilestones(ctx context.Context, poolID string) ([]*entity.Milestone, error) {
	var milestoneModels []model.MilestoneModel
	err := r.db.WithContext(ctx).
		Where("pool_id = ?", poolID).
		Order("milestone_percentage ASC").
		Find(&milestoneModels).Error
	if err != nil {
		return nil, err
	}

	milestones := make([]*entity.Milestone, len(milestoneModels))
	for i := range milestoneModels {
		milestones[i] = ToMilestoneEntity(&milestoneModels[i])
	}
	return milestones, nil
}
