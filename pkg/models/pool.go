package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pool struct {
	ID                 string    `gorm:"type:uuid;primary_key" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	OwnerID            string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	GoalAmountCents    int64     `gorm:"not null" json:"goal_amount_cents"`
	CurrentAmountCents int64     `gorm:"not null;default:0" json:"current_amount_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (p *Pool) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PoolMember struct {
	PoolID   string    `gorm:"type:uuid;primaryKey" json:"pool_id"`
	UserID   string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
