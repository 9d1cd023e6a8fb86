package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pool-fund/pkg/cache"
	"pool-fund/pkg/fee"
	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/ledger/internal/entity"
	"pool-fund/services/ledger/internal/provider"
	"pool-fund/services/ledger/internal/repo/persistent"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrInsufficientFunds = errors.New("pool balance is lower than the transfer amount")
	ErrConcurrentUpdate  = errors.New("status kept changing underneath the update")
)

// maxCASAttempts bounds the re-read loop when a conditional write loses.
const maxCASAttempts = 3

type LedgerUseCase interface {
	QuoteFee(amountCents int64, method string) (*fee.Breakdown, error)
	CreateDeposit(ctx context.Context, userID, poolID string, amountCents int64, method string) (*entity.Transaction, error)
	CreateTransfer(ctx context.Context, poolID string, amountCents int64, destination string) (*entity.Transfer, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error)

	ApplyTransactionEvent(ctx context.Context, paymentIntentID string, target entity.TransactionStatus, at time.Time) (entity.Outcome, error)
	ApplyTransferEvent(ctx context.Context, stripeTransferID string, target entity.TransferStatus, at time.Time) (entity.Outcome, error)
	RecordDispute(ctx context.Context, dispute *entity.Dispute, at time.Time) (entity.Outcome, error)
}

type ledgerUseCase struct {
	ledgerRepo persistent.LedgerRepository
	provider   provider.Provider
	locker     cache.Locker
	publisher  queue.Publisher
	logger     *logger.Logger
}

// NewLedgerUseCase wires the ledger. publisher may be nil when no broker is configured.
func NewLedgerUseCase(
	ledgerRepo persistent.LedgerRepository,
	paymentProvider provider.Provider,
	locker cache.Locker,
	publisher queue.Publisher,
	logger *logger.Logger,
) LedgerUseCase {
	return &ledgerUseCase{
		ledgerRepo: ledgerRepo,
		provider:   paymentProvider,
		locker:     locker,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ledgerUseCase) QuoteFee(amountCents int64, method string) (*fee.Breakdown, error) {
	m, err := fee.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	return fee.Quote(amountCents, m)
}

func (uc *ledgerUseCase) CreateDeposit(ctx context.Context, userID, poolID string, amountCents int64, method string) (*entity.Transaction, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	m, err := fee.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	feeCents, err := fee.Calculate(amountCents, m)
	if err != nil {
		return nil, err
	}

	if _, err := uc.ledgerRepo.GetPool(ctx, poolID); err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrPoolNotFound
		}
		uc.logger.Error("Failed to load pool %s: %v", poolID, err)
		return nil, fmt.Errorf("failed to load pool: %w", err)
	}

	intent, err := uc.provider.InitiateDeposit(ctx, provider.DepositRequest{
		UserID:      userID,
		PoolID:      poolID,
		AmountCents: amountCents,
		FeeCents:    feeCents,
		Method:      m,
	})
	if err != nil {
		uc.logger.Error("Provider %s rejected deposit for pool %s: %v", uc.provider.Name(), poolID, err)
		return nil, fmt.Errorf("failed to initiate deposit: %w", err)
	}

	transaction := &entity.Transaction{
		UserID:                userID,
		PoolID:                poolID,
		AmountCents:           amountCents,
		FeeCents:              feeCents,
		Method:                string(m),
		Status:                entity.TransactionPending,
		StripePaymentIntentID: intent.PaymentIntentID,
	}
	if err := uc.ledgerRepo.CreateTransaction(ctx, transaction); err != nil {
		uc.logger.Error("Failed to store pending transaction %s: %v", intent.PaymentIntentID, err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	transaction.ClientSecret = intent.ClientSecret

	uc.logger.Info("Deposit %s of %d cents (+%d fee) pending for pool %s", intent.PaymentIntentID, amountCents, feeCents, poolID)
	return transaction, nil
}

func (uc *ledgerUseCase) CreateTransfer(ctx context.Context, poolID string, amountCents int64, destination string) (*entity.Transfer, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	pool, err := uc.ledgerRepo.GetPool(ctx, poolID)
	if err != nil {
		if errors.Is(err, persistent.ErrNotFound) {
			return nil, ErrPoolNotFound
		}
		uc.logger.Error("Failed to load pool %s: %v", poolID, err)
		return nil, fmt.Errorf("failed to load pool: %w", err)
	}
	if pool.CurrentAmountCents < amountCents {
		return nil, ErrInsufficientFunds
	}

	intent, err := uc.provider.InitiateTransfer(ctx, provider.TransferRequest{
		PoolID:      poolID,
		AmountCents: amountCents,
		Destination: destination,
	})
	if err != nil {
		uc.logger.Error("Provider %s rejected transfer for pool %s: %v", uc.provider.Name(), poolID, err)
		return nil, fmt.Errorf("failed to initiate transfer: %w", err)
	}

	transfer := &entity.Transfer{
		PoolID:           poolID,
		AmountCents:      amountCents,
		StripeTransferID: intent.TransferID,
		Status:           entity.TransferCreated,
	}
	if err := uc.ledgerRepo.CreateTransfer(ctx, transfer); err != nil {
		uc.logger.Error("Failed to store transfer %s: %v", intent.TransferID, err)
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	uc.logger.Info("Transfer %s of %d cents created for pool %s", intent.TransferID, amountCents, poolID)
	return transfer, nil
}

func (uc *ledgerUseCase) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	transactions, err := uc.ledgerRepo.GetTransactions(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list transactions for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

func (uc *ledgerUseCase) ApplyTransactionEvent(ctx context.Context, paymentIntentID string, target entity.TransactionStatus, at time.Time) (entity.Outcome, error) {
	release, err := uc.locker.Lock(ctx, "ledger:tx:"+paymentIntentID)
	if err != nil {
		return "", fmt.Errorf("failed to lock transaction %s: %w", paymentIntentID, err)
	}
	defer release()

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		transaction, err := uc.ledgerRepo.GetTransactionByPaymentIntent(ctx, paymentIntentID)
		if errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Warn("No transaction for payment intent %s, dropping %s", paymentIntentID, target)
			return entity.OutcomeNotFound, nil
		}
		if err != nil {
			uc.logger.Error("Failed to load transaction %s: %v", paymentIntentID, err)
			return "", fmt.Errorf("failed to get transaction: %w", err)
		}

		switch transaction.Status.TransitionTo(target) {
		case entity.TransitionDuplicate:
			uc.logger.Debug("Transaction %s already %s", paymentIntentID, target)
			if target == entity.TransactionCaptured && transaction.CapturePublishedAt == nil {
				if err := uc.publishCaptured(ctx, transaction, at); err != nil {
					return "", err
				}
			}
			return entity.OutcomeDuplicate, nil
		case entity.TransitionStale:
			uc.logger.Warn("Ignoring stale %s -> %s for transaction %s", transaction.Status, target, paymentIntentID)
			return entity.OutcomeStale, nil
		}

		change := persistent.TransactionStatusChange{
			PaymentIntentID: paymentIntentID,
			From:            transaction.Status,
			To:              target,
			At:              at,
		}
		if target == entity.TransactionCaptured {
			change.PoolID = transaction.PoolID
			change.PoolDeltaCents = transaction.AmountCents
		}

		applied, err := uc.ledgerRepo.CompareAndSetTransactionStatus(ctx, change)
		if err != nil {
			uc.logger.Error("Failed to move transaction %s to %s: %v", paymentIntentID, target, err)
			return "", fmt.Errorf("failed to update transaction status: %w", err)
		}
		if !applied {
			uc.logger.Debug("Lost status race on transaction %s, re-reading", paymentIntentID)
			continue
		}

		uc.logger.Info("Transaction %s moved %s -> %s", paymentIntentID, transaction.Status, target)
		if target == entity.TransactionCaptured {
			// The capture stays applied; the error makes the provider redeliver,
			// and the redelivery publishes again.
			if err := uc.publishCaptured(ctx, transaction, at); err != nil {
				return "", err
			}
		}
		return entity.OutcomeApplied, nil
	}

	return "", fmt.Errorf("transaction %s: %w", paymentIntentID, ErrConcurrentUpdate)
}

func (uc *ledgerUseCase) ApplyTransferEvent(ctx context.Context, stripeTransferID string, target entity.TransferStatus, at time.Time) (entity.Outcome, error) {
	release, err := uc.locker.Lock(ctx, "ledger:transfer:"+stripeTransferID)
	if err != nil {
		return "", fmt.Errorf("failed to lock transfer %s: %w", stripeTransferID, err)
	}
	defer release()

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		transfer, err := uc.ledgerRepo.GetTransferByStripeID(ctx, stripeTransferID)
		if errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Warn("No transfer %s, dropping %s", stripeTransferID, target)
			return entity.OutcomeNotFound, nil
		}
		if err != nil {
			uc.logger.Error("Failed to load transfer %s: %v", stripeTransferID, err)
			return "", fmt.Errorf("failed to get transfer: %w", err)
		}

		switch transfer.Status.TransitionTo(target) {
		case entity.TransitionDuplicate:
			uc.logger.Debug("Transfer %s already %s", stripeTransferID, target)
			return entity.OutcomeDuplicate, nil
		case entity.TransitionStale:
			uc.logger.Warn("Ignoring stale %s -> %s for transfer %s", transfer.Status, target, stripeTransferID)
			return entity.OutcomeStale, nil
		}

		change := persistent.TransferStatusChange{
			StripeTransferID: stripeTransferID,
			From:             transfer.Status,
			To:               target,
			At:               at,
		}
		if target == entity.TransferPaid {
			change.PoolID = transfer.PoolID
			change.PoolDeltaCents = -transfer.AmountCents
		}

		applied, err := uc.ledgerRepo.CompareAndSetTransferStatus(ctx, change)
		if err != nil {
			uc.logger.Error("Failed to move transfer %s to %s: %v", stripeTransferID, target, err)
			return "", fmt.Errorf("failed to update transfer status: %w", err)
		}
		if !applied {
			continue
		}

		uc.logger.Info("Transfer %s moved %s -> %s", stripeTransferID, transfer.Status, target)
		return entity.OutcomeApplied, nil
	}

	return "", fmt.Errorf("transfer %s: %w", stripeTransferID, ErrConcurrentUpdate)
}

// RecordDispute stores the dispute once per provider dispute id and moves the
// disputed transaction to disputed. Funds stay in the pool until the dispute is
// resolved outside the ledger.
func (uc *ledgerUseCase) RecordDispute(ctx context.Context, dispute *entity.Dispute, at time.Time) (entity.Outcome, error) {
	inserted, err := uc.ledgerRepo.CreateDispute(ctx, dispute)
	if err != nil {
		uc.logger.Error("Failed to record dispute %s: %v", dispute.StripeDisputeID, err)
		return "", fmt.Errorf("failed to create dispute: %w", err)
	}
	if inserted {
		uc.logger.Warn("Dispute %s opened on charge %s for %d cents (%s)", dispute.StripeDisputeID, dispute.ChargeID, dispute.AmountCents, dispute.Reason)
	}

	if strings.TrimSpace(dispute.PaymentIntentID) == "" {
		if inserted {
			return entity.OutcomeApplied, nil
		}
		return entity.OutcomeDuplicate, nil
	}

	return uc.ApplyTransactionEvent(ctx, dispute.PaymentIntentID, entity.TransactionDisputed, at)
}

func (uc *ledgerUseCase) publishCaptured(ctx context.Context, transaction *entity.Transaction, at time.Time) error {
	if uc.publisher == nil {
		return nil
	}
	capturedAt := at
	if transaction.CapturedAt != nil {
		capturedAt = *transaction.CapturedAt
	}
	msg := queue.ContributionCaptured{
		TransactionID: transaction.ID,
		UserID:        transaction.UserID,
		PoolID:        transaction.PoolID,
		AmountCents:   transaction.AmountCents,
		CapturedAt:    capturedAt,
	}
	if err := uc.publisher.Publish(queue.RoutingContributionCaptured, msg); err != nil {
		uc.logger.Error("Failed to publish capture of %s: %v", transaction.StripePaymentIntentID, err)
		return fmt.Errorf("failed to publish capture of %s: %w", transaction.StripePaymentIntentID, err)
	}
	if err := uc.ledgerRepo.MarkCapturePublished(ctx, transaction.StripePaymentIntentID, time.Now().UTC()); err != nil {
		uc.logger.Warn("Failed to mark capture of %s as published: %v", transaction.StripePaymentIntentID, err)
	}
	return nil
}
