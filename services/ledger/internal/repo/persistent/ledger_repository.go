package persistent

import (
	"context"
	"errors"
	"time"

	"pool-fund/services/ledger/internal/entity"
	"pool-fund/services/ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// TransactionStatusChange is a conditional status write: it only lands if the
// row is still in From. PoolDeltaCents is applied to the pool balance in the
// same database transaction.
type TransactionStatusChange struct {
	PaymentIntentID string
	From            entity.TransactionStatus
	To              entity.TransactionStatus
	At              time.Time
	PoolID          string
	PoolDeltaCents  int64
}

type TransferStatusChange struct {
	StripeTransferID string
	From             entity.TransferStatus
	To               entity.TransferStatus
	At               time.Time
	PoolID           string
	PoolDeltaCents   int64
}

type LedgerRepository interface {
	GetPool(ctx context.Context, poolID string) (*entity.PoolBalance, error)

	CreateTransaction(ctx context.Context, transaction *entity.Transaction) error
	GetTransactionByPaymentIntent(ctx context.Context, paymentIntentID string) (*entity.Transaction, error)
	CompareAndSetTransactionStatus(ctx context.Context, change TransactionStatusChange) (bool, error)
	GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error)
	// MarkCapturePublished records that contribution.captured went out for the
	// transaction; captures without the mark are published again on redelivery.
	MarkCapturePublished(ctx context.Context, paymentIntentID string, at time.Time) error

	CreateTransfer(ctx context.Context, transfer *entity.Transfer) error
	GetTransferByStripeID(ctx context.Context, stripeTransferID string) (*entity.Transfer, error)
	CompareAndSetTransferStatus(ctx context.Context, change TransferStatusChange) (bool, error)

	CreateDispute(ctx context.Context, dispute *entity.Dispute) (bool, error)

	RecordWebhookEvent(ctx context.Context, event *entity.WebhookEvent) (bool, error)
	MarkWebhookEventProcessed(ctx context.Context, providerEventID string, outcome entity.Outcome, processingErr string) error
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetPool(ctx context.Context, poolID string) (*entity.PoolBalance, error) {
	var poolModel model.PoolModel
	if err := r.db.WithContext(ctx).Where("id = ?", poolID).First(&poolModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity.PoolBalance{
		ID:                 poolModel.ID,
		GoalAmountCents:    poolModel.GoalAmountCents,
		CurrentAmountCents: poolModel.CurrentAmountCents,
	}, nil
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := ToTransactionModel(transaction)
	if transactionModel.ID == "" {
		transactionModel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return err
	}
	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt
	transaction.UpdatedAt = transactionModel.UpdatedAt
	return nil
}

func (r *ledgerRepository) GetTransactionByPaymentIntent(ctx context.Context, paymentIntentID string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	err := r.db.WithContext(ctx).Where("stripe_payment_intent_id = ?", paymentIntentID).First(&transactionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ToTransactionEntity(&transactionModel), nil
}

func (r *ledgerRepository) CompareAndSetTransactionStatus(ctx context.Context, change TransactionStatusChange) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(change.To),
		"updated_at": change.At,
	}
	switch change.To {
	case entity.TransactionCaptured:
		updates["captured_at"] = change.At
	case entity.TransactionFailed:
		updates["failed_at"] = change.At
	case entity.TransactionDisputed:
		updates["disputed_at"] = change.At
	}

	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TransactionModel{}).
			Where("stripe_payment_intent_id = ? AND status = ?", change.PaymentIntentID, string(change.From)).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if change.PoolDeltaCents != 0 {
			if err := adjustPoolBalance(tx, change.PoolID, change.PoolDeltaCents, change.At); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	return applied, err
}

func (r *ledgerRepository) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}

func (r *ledgerRepository) MarkCapturePublished(ctx context.Context, paymentIntentID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("stripe_payment_intent_id = ? AND capture_published_at IS NULL", paymentIntentID).
		Update("capture_published_at", at).Error
}

func (r *ledgerRepository) CreateTransfer(ctx context.Context, transfer *entity.Transfer) error {
	transferModel := ToTransferModel(transfer)
	if transferModel.ID == "" {
		transferModel.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(transferModel).Error; err != nil {
		return err
	}
	transfer.ID = transferModel.ID
	transfer.CreatedAt = transferModel.CreatedAt
	transfer.UpdatedAt = transferModel.UpdatedAt
	return nil
}

func (r *ledgerRepository) GetTransferByStripeID(ctx context.Context, stripeTransferID string) (*entity.Transfer, error) {
	var transferModel model.TransferModel
	err := r.db.WithContext(ctx).Where("stripe_transfer_id = ?", stripeTransferID).First(&transferModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ToTransferEntity(&transferModel), nil
}

func (r *ledgerRepository) CompareAndSetTransferStatus(ctx context.Context, change TransferStatusChange) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TransferModel{}).
			Where("stripe_transfer_id = ? AND status = ?", change.StripeTransferID, string(change.From)).
			Updates(map[string]interface{}{
				"status":     string(change.To),
				"updated_at": change.At,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if change.PoolDeltaCents != 0 {
			if err := adjustPoolBalance(tx, change.PoolID, change.PoolDeltaCents, change.At); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	return applied, err
}

func (r *ledgerRepository) CreateDispute(ctx context.Context, dispute *entity.Dispute) (bool, error) {
	disputeModel := ToDisputeModel(dispute)
	if disputeModel.ID == "" {
		disputeModel.ID = uuid.New().String()
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "stripe_dispute_id"}}, DoNothing: true}).
		Create(disputeModel)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	dispute.ID = disputeModel.ID
	dispute.CreatedAt = disputeModel.CreatedAt
	return true, nil
}

func (r *ledgerRepository) RecordWebhookEvent(ctx context.Context, event *entity.WebhookEvent) (bool, error) {
	eventModel := ToWebhookEventModel(event)
	if eventModel.ID == "" {
		eventModel.ID = uuid.New().String()
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "provider_event_id"}}, DoNothing: true}).
		Create(eventModel)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *ledgerRepository) MarkWebhookEventProcessed(ctx context.Context, providerEventID string, outcome entity.Outcome, processingErr string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&model.WebhookEventModel{}).
		Where("provider_event_id = ?", providerEventID).
		Updates(map[string]interface{}{
			"outcome":          string(outcome),
			"processing_error": processingErr,
			"processed_at":     &now,
		}).Error
}

func adjustPoolBalance(tx *gorm.DB, poolID string, deltaCents int64, at time.Time) error {
	result := tx.Model(&model.PoolModel{}).Where("id = ?", poolID).
		Updates(map[string]interface{}{
			"current_amount_cents": clause.Expr{SQL: "current_amount_cents + ?", Vars: []interface{}{deltaCents}},
			"updated_at":           at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
