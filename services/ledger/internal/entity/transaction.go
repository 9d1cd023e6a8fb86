package entity

import "time"

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionCaptured TransactionStatus = "captured"
	TransactionFailed   TransactionStatus = "failed"
	TransactionDisputed TransactionStatus = "disputed"
)

// Transition classifies a requested status change against the state machine.
type Transition int

const (
	TransitionApply Transition = iota
	TransitionDuplicate
	TransitionStale
)

var transactionEdges = map[TransactionStatus][]TransactionStatus{
	TransactionPending:  {TransactionCaptured, TransactionFailed},
	TransactionCaptured: {TransactionDisputed},
}

// TransitionTo reports whether moving from s to target is a legal step, a
// redelivery of the current state, or a stale/out-of-order request.
func (s TransactionStatus) TransitionTo(target TransactionStatus) Transition {
	if s == target {
		return TransitionDuplicate
	}
	for _, next := range transactionEdges[s] {
		if next == target {
			return TransitionApply
		}
	}
	return TransitionStale
}

type Transaction struct {
	ID                    string            `json:"id"`
	UserID                string            `json:"user_id"`
	PoolID                string            `json:"pool_id"`
	AmountCents           int64             `json:"amount_cents"`
	FeeCents              int64             `json:"fee_cents"`
	Method                string            `json:"method"`
	Status                TransactionStatus `json:"status"`
	StripePaymentIntentID string            `json:"stripe_payment_intent_id"`
	ClientSecret          string            `json:"client_secret,omitempty"`
	CapturedAt            *time.Time        `json:"captured_at,omitempty"`
	FailedAt              *time.Time        `json:"failed_at,omitempty"`
	DisputedAt            *time.Time        `json:"disputed_at,omitempty"`
	CapturePublishedAt    *time.Time        `json:"-"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

type PoolBalance struct {
	ID                 string `json:"id"`
	GoalAmountCents    int64  `json:"goal_amount_cents"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
}
