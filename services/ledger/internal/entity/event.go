package entity

import (
	"encoding/json"
	"time"
)

// EventKind is the closed set of provider events the ledger acts on.
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_intent.succeeded"
	EventPaymentFailed    EventKind = "payment_intent.payment_failed"
	EventDisputeCreated   EventKind = "charge.dispute.created"
	EventTransferCreated  EventKind = "transfer.created"
	EventTransferUpdated  EventKind = "transfer.updated"
	EventUnrecognized     EventKind = "unrecognized"
)

var knownKinds = map[string]EventKind{
	string(EventPaymentSucceeded): EventPaymentSucceeded,
	string(EventPaymentFailed):    EventPaymentFailed,
	string(EventDisputeCreated):   EventDisputeCreated,
	string(EventTransferCreated):  EventTransferCreated,
	string(EventTransferUpdated):  EventTransferUpdated,
}

func ParseEventKind(tag string) EventKind {
	if kind, ok := knownKinds[tag]; ok {
		return kind
	}
	return EventUnrecognized
}

type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Kind    EventKind       `json:"-"`
	Created time.Time       `json:"-"`
	Object  json.RawMessage `json:"-"`
}

// Outcome is what applying an event did to the ledger.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeStale     Outcome = "stale"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeIgnored   Outcome = "ignored"
)

type PaymentIntentObject struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
	Metadata struct {
		UserID string `json:"user_id"`
		PoolID string `json:"pool_id"`
	} `json:"metadata"`
}

type DisputeObject struct {
	ID            string `json:"id"`
	Charge        string `json:"charge"`
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
}

type TransferObject struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

type WebhookEvent struct {
	ID              string     `json:"id"`
	ProviderEventID string     `json:"provider_event_id"`
	EventType       string     `json:"event_type"`
	Payload         []byte     `json:"-"`
	SignatureValid  bool       `json:"signature_valid"`
	Outcome         Outcome    `json:"outcome"`
	ProcessingError string     `json:"processing_error,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
