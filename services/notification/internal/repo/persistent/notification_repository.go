package persistent

import (
	"context"
	"errors"

	"pool-fund/services/notification/internal/model"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type NotificationRepository interface {
	GetPoolName(ctx context.Context, poolID string) (string, error)
	GetPoolMembers(ctx context.Context, poolID string) ([]string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetPoolName(ctx context.Context, poolID string) (string, error) {
	var poolModel model.PoolModel
	err := r.db.WithContext(ctx).Where("id = ?", poolID).Select("id", "name").First(&poolModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return poolModel.Name, nil
}

func (r *notificationRepository) GetPoolMembers(ctx context.Context, poolID string) ([]string, error) {
	var memberModels []model.PoolMemberModel
	if err := r.db.WithContext(ctx).Where("pool_id = ?", poolID).Select("pool_id", "user_id").Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return ToMemberIDs(memberModels), nil
}
