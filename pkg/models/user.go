package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserTier string

const (
	TierFree    UserTier = "free"
	TierPlus    UserTier = "plus"
	TierPremium UserTier = "premium"
)

// User is the slice of the users table owned by account management that the
// ledger and analytics read.
type User struct {
	ID                 string    `gorm:"type:uuid;primary_key" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName        string    `gorm:"not null" json:"display_name"`
	Tier               UserTier  `gorm:"type:varchar(20);not null;default:'free'" json:"tier"`
	PooledBalanceCents int64     `gorm:"not null;default:0" json:"pooled_balance_cents"`
	MonthlyWithdrawals int       `gorm:"not null;default:0" json:"monthly_withdrawals"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
