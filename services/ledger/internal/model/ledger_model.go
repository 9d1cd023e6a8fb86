package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID                    string     `gorm:"type:uuid;primary_key" json:"id"`
	UserID                string     `gorm:"type:uuid;not null;index" json:"user_id"`
	PoolID                string     `gorm:"type:uuid;not null;index" json:"pool_id"`
	AmountCents           int64      `gorm:"not null" json:"amount_cents"`
	FeeCents              int64      `gorm:"not null;default:0" json:"fee_cents"`
	Method                string     `gorm:"type:varchar(20);not null" json:"method"`
	Status                string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StripePaymentIntentID string     `gorm:"uniqueIndex;not null" json:"stripe_payment_intent_id"`
	CapturedAt            *time.Time `json:"captured_at"`
	FailedAt              *time.Time `json:"failed_at"`
	DisputedAt            *time.Time `json:"disputed_at"`
	CapturePublishedAt    *time.Time `json:"capture_published_at"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type TransferModel struct {
	ID               string    `gorm:"type:uuid;primary_key" json:"id"`
	PoolID           string    `gorm:"type:uuid;not null;index" json:"pool_id"`
	AmountCents      int64     `gorm:"not null" json:"amount_cents"`
	StripeTransferID string    `gorm:"uniqueIndex;not null" json:"stripe_transfer_id"`
	Status           string    `gorm:"type:varchar(20);not null;default:'created'" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (TransferModel) TableName() string {
	return "transfers"
}

func (t *TransferModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type DisputeModel struct {
	ID              string    `gorm:"type:uuid;primary_key" json:"id"`
	StripeDisputeID string    `gorm:"uniqueIndex;not null" json:"stripe_dispute_id"`
	ChargeID        string    `gorm:"not null" json:"charge_id"`
	PaymentIntentID string    `gorm:"not null;default:''" json:"payment_intent_id"`
	AmountCents     int64     `gorm:"not null" json:"amount_cents"`
	Reason          string    `gorm:"not null;default:''" json:"reason"`
	Status          string    `gorm:"type:varchar(40);not null" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (DisputeModel) TableName() string {
	return "disputes"
}

func (d *DisputeModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// WebhookEventModel is the delivery log, one row per provider event id.
type WebhookEventModel struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	ProviderEventID string         `gorm:"uniqueIndex;not null" json:"provider_event_id"`
	EventType       string         `gorm:"type:varchar(100);not null;index" json:"event_type"`
	Payload         datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	SignatureValid  bool           `gorm:"not null;default:false" json:"signature_valid"`
	Outcome         string         `gorm:"type:varchar(20);not null;default:''" json:"outcome"`
	ProcessingError string         `gorm:"type:text;not null;default:''" json:"processing_error"`
	ProcessedAt     *time.Time     `json:"processed_at"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (WebhookEventModel) TableName() string {
	return "webhook_events"
}

func (w *WebhookEventModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

type PoolModel struct {
	ID                 string `gorm:"type:uuid;primary_key"`
	GoalAmountCents    int64  `gorm:"not null"`
	CurrentAmountCents int64  `gorm:"not null;default:0"`
	UpdatedAt          time.Time
}

func (PoolModel) TableName() string {
	return "pools"
}
