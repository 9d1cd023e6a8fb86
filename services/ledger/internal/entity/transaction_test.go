package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from TransactionStatus
		to   TransactionStatus
		want Transition
	}{
		{TransactionPending, TransactionCaptured, TransitionApply},
		{TransactionPending, TransactionFailed, TransitionApply},
		{TransactionCaptured, TransactionDisputed, TransitionApply},
		{TransactionCaptured, TransactionCaptured, TransitionDuplicate},
		{TransactionCaptured, TransactionFailed, TransitionStale},
		{TransactionCaptured, TransactionPending, TransitionStale},
		{TransactionFailed, TransactionCaptured, TransitionStale},
		{TransactionFailed, TransactionPending, TransitionStale},
		{TransactionPending, TransactionDisputed, TransitionStale},
		{TransactionDisputed, TransactionCaptured, TransitionStale},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.TransitionTo(tt.to))
		})
	}
}

func TestTransferStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from TransferStatus
		to   TransferStatus
		want Transition
	}{
		{TransferCreated, TransferInTransit, TransitionApply},
		{TransferInTransit, TransferPaid, TransitionApply},
		{TransferInTransit, TransferFailed, TransitionApply},
		{TransferCreated, TransferPaid, TransitionApply},
		{TransferCreated, TransferFailed, TransitionApply},
		{TransferInTransit, TransferInTransit, TransitionDuplicate},
		{TransferPaid, TransferInTransit, TransitionStale},
		{TransferPaid, TransferFailed, TransitionStale},
		{TransferFailed, TransferPaid, TransitionStale},
		{TransferInTransit, TransferCreated, TransitionStale},
		{TransferInTransit, TransferStatus("reversed"), TransitionStale},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.TransitionTo(tt.to))
		})
	}
}

func TestParseEventKind(t *testing.T) {
	assert.Equal(t, EventPaymentSucceeded, ParseEventKind("payment_intent.succeeded"))
	assert.Equal(t, EventTransferUpdated, ParseEventKind("transfer.updated"))
	assert.Equal(t, EventUnrecognized, ParseEventKind("customer.created"))
	assert.Equal(t, EventUnrecognized, ParseEventKind(""))
}
