package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/repo/persistent"
)

var ErrInvalidBadge = errors.New("user, badge type and badge name are required")

// BadgeUseCase is the only path that creates badges.
type BadgeUseCase interface {
	Award(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (*entity.AwardResult, error)
	HasBadge(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (bool, error)
	ListBadges(ctx context.Context, userID string) ([]*entity.Badge, error)
}

type badgeUseCase struct {
	badgeRepo persistent.BadgeRepository
	publisher queue.Publisher
	logger    *logger.Logger
}

func NewBadgeUseCase(badgeRepo persistent.BadgeRepository, publisher queue.Publisher, logger *logger.Logger) BadgeUseCase {
	return &badgeUseCase{
		badgeRepo: badgeRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *badgeUseCase) Award(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (*entity.AwardResult, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(badgeType) == "" || strings.TrimSpace(badgeName) == "" {
		return nil, ErrInvalidBadge
	}

	badge := &entity.Badge{
		UserID:    userID,
		BadgeType: badgeType,
		BadgeName: badgeName,
		PoolID:    poolID,
	}
	granted, err := uc.badgeRepo.CreateBadgeIfAbsent(ctx, badge)
	if err != nil {
		uc.logger.Error("Failed to award badge %q to %s: %v", badgeName, userID, err)
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}
	if !granted {
		uc.logger.Debug("User %s already holds badge %q", userID, badgeName)
		return &entity.AwardResult{Granted: false}, nil
	}

	uc.logger.Info("Awarded %s badge %q to user %s", badgeType, badgeName, userID)
	if uc.publisher != nil {
		msg := queue.BadgeAwarded{
			BadgeID:   badge.ID,
			UserID:    badge.UserID,
			BadgeType: badge.BadgeType,
			BadgeName: badge.BadgeName,
			PoolID:    badge.PoolID,
			EarnedAt:  badge.EarnedAt,
		}
		if err := uc.publisher.Publish(queue.RoutingBadgeAwarded, msg); err != nil {
			uc.logger.Error("Failed to publish badge %s: %v", badge.ID, err)
		}
	}

	return &entity.AwardResult{Granted: true, Badge: badge}, nil
}

func (uc *badgeUseCase) HasBadge(ctx context.Context, userID, badgeType, badgeName string, poolID *string) (bool, error) {
	has, err := uc.badgeRepo.HasBadge(ctx, userID, badgeType, badgeName, poolID)
	if err != nil {
		uc.logger.Error("Failed to check badge %q for %s: %v", badgeName, userID, err)
		return false, fmt.Errorf("failed to check badge: %w", err)
	}
	return has, nil
}

func (uc *badgeUseCase) ListBadges(ctx context.Context, userID string) ([]*entity.Badge, error) {
	badges, err := uc.badgeRepo.ListBadges(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list badges for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}
	return badges, nil
}
