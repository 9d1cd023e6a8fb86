// Package provider abstracts the payment network that moves money in and out of pools.
package provider

import (
	"context"

	"pool-fund/pkg/fee"
)

type DepositRequest struct {
	UserID      string
	PoolID      string
	AmountCents int64
	FeeCents    int64
	Method      fee.Method
}

type DepositIntent struct {
	PaymentIntentID string
	ClientSecret    string
}

type TransferRequest struct {
	PoolID      string
	AmountCents int64
	Destination string
}

type TransferIntent struct {
	TransferID string
}

// Provider is implemented by the simulator and, later, by a real network client.
// The ledger only ever sees the external ids it returns.
type Provider interface {
	Name() string
	InitiateDeposit(ctx context.Context, req DepositRequest) (*DepositIntent, error)
	InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferIntent, error)
}
