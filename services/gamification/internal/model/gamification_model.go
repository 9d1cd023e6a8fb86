package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StreakModel struct {
	ID                   string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID               string    `gorm:"type:uuid;not null" json:"user_id"`
	PoolID               *string   `gorm:"type:uuid" json:"pool_id"`
	StreakCount          int       `gorm:"not null;default:0" json:"streak_count"`
	LongestStreak        int       `gorm:"not null;default:0" json:"longest_streak"`
	LastContributionDate time.Time `gorm:"type:date;not null" json:"last_contribution_date"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (StreakModel) TableName() string {
	return "user_streaks"
}

func (s *StreakModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type BadgeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	BadgeType string    `gorm:"type:varchar(40);not null" json:"badge_type"`
	BadgeName string    `gorm:"type:varchar(100);not null" json:"badge_name"`
	PoolID    *string   `gorm:"type:uuid" json:"pool_id"`
	EarnedAt  time.Time `gorm:"not null" json:"earned_at"`
}

func (BadgeModel) TableName() string {
	return "badges"
}

func (b *BadgeModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

type MilestoneModel struct {
	PoolID              string    `gorm:"type:uuid;primaryKey" json:"pool_id"`
	MilestonePercentage int       `gorm:"primaryKey" json:"milestone_percentage"`
	ReachedAt           time.Time `gorm:"not null" json:"reached_at"`
	CelebrationUnlocked bool      `gorm:"not null;default:true" json:"celebration_unlocked"`
}

func (MilestoneModel) TableName() string {
	return "pool_milestones"
}

type PoolModel struct {
	ID                 string `gorm:"type:uuid;primary_key"`
	Name               string
	GoalAmountCents    int64
	CurrentAmountCents int64
}

func (PoolModel) TableName() string {
	return "pools"
}
