package entity

import "time"

type TransferStatus string

const (
	TransferCreated   TransferStatus = "created"
	TransferInTransit TransferStatus = "in_transit"
	TransferPaid      TransferStatus = "paid"
	TransferFailed    TransferStatus = "failed"
)

var transferRank = map[TransferStatus]int{
	TransferCreated:   0,
	TransferInTransit: 1,
	TransferPaid:      2,
	TransferFailed:    2,
}

func (s TransferStatus) Valid() bool {
	_, ok := transferRank[s]
	return ok
}

func (s TransferStatus) Terminal() bool {
	return s == TransferPaid || s == TransferFailed
}

// TransitionTo allows forward moves (including skipping in_transit when the
// provider delivers events out of order) and a move to failed from any
// non-terminal state.
func (s TransferStatus) TransitionTo(target TransferStatus) Transition {
	if s == target {
		return TransitionDuplicate
	}
	if !target.Valid() || s.Terminal() {
		return TransitionStale
	}
	if transferRank[target] > transferRank[s] {
		return TransitionApply
	}
	return TransitionStale
}

type Transfer struct {
	ID               string         `json:"id"`
	PoolID           string         `json:"pool_id"`
	AmountCents      int64          `json:"amount_cents"`
	StripeTransferID string         `json:"stripe_transfer_id"`
	Status           TransferStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type Dispute struct {
	ID              string    `json:"id"`
	StripeDisputeID string    `json:"stripe_dispute_id"`
	ChargeID        string    `json:"charge_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	AmountCents     int64     `json:"amount_cents"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
