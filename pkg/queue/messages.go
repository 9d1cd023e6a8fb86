package queue

import "time"

// ContributionCaptured is published by the ledger once a deposit is captured.
type ContributionCaptured struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	PoolID        string    `json:"pool_id"`
	AmountCents   int64     `json:"amount_cents"`
	CapturedAt    time.Time `json:"captured_at"`
}

type MilestoneReached struct {
	PoolID      string    `json:"pool_id"`
	Percentage  int       `json:"percentage"`
	TriggeredBy string    `json:"triggered_by,omitempty"`
	ReachedAt   time.Time `json:"reached_at"`
}

type BadgeAwarded struct {
	BadgeID   string    `json:"badge_id"`
	UserID    string    `json:"user_id"`
	BadgeType string    `json:"badge_type"`
	BadgeName string    `json:"badge_name"`
	PoolID    *string   `json:"pool_id,omitempty"`
	EarnedAt  time.Time `json:"earned_at"`
}
