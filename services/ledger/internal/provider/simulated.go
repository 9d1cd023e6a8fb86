package provider

import (
	"context"
	"fmt"
	"strings"

	"pool-fund/pkg/logger"

	"github.com/google/uuid"
)

// Simulated fabricates provider ids without calling any network. Completion
// arrives later through signed webhooks, same as with a real provider.
type Simulated struct {
	logger *logger.Logger
}

func NewSimulated(log *logger.Logger) *Simulated {
	return &Simulated{logger: log}
}

func (s *Simulated) Name() string {
	return "simulated"
}

func (s *Simulated) InitiateDeposit(ctx context.Context, req DepositRequest) (*DepositIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive")
	}

	id := "pi_" + compactID()
	s.logger.Info("[PROVIDER] Simulated deposit %s: user=%s pool=%s amount=%d fee=%d method=%s",
		id, req.UserID, req.PoolID, req.AmountCents, req.FeeCents, req.Method)

	return &DepositIntent{
		PaymentIntentID: id,
		ClientSecret:    id + "_secret_" + compactID()[:12],
	}, nil
}

func (s *Simulated) InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive")
	}

	id := "tr_" + compactID()
	s.logger.Info("[PROVIDER] Simulated transfer %s: pool=%s amount=%d destination=%s",
		id, req.PoolID, req.AmountCents, req.Destination)

	return &TransferIntent{TransferID: id}, nil
}

func compactID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
