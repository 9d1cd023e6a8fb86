package persistent

import (
	"pool-fund/services/ledger/internal/entity"
	"pool-fund/services/ledger/internal/model"
)

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:                    m.ID,
		UserID:                m.UserID,
		PoolID:                m.PoolID,
		AmountCents:           m.AmountCents,
		FeeCents:              m.FeeCents,
		Method:                m.Method,
		Status:                entity.TransactionStatus(m.Status),
		StripePaymentIntentID: m.StripePaymentIntentID,
		CapturedAt:            m.CapturedAt,
		FailedAt:              m.FailedAt,
		DisputedAt:            m.DisputedAt,
		CapturePublishedAt:    m.CapturePublishedAt,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:                    e.ID,
		UserID:                e.UserID,
		PoolID:                e.PoolID,
		AmountCents:           e.AmountCents,
		FeeCents:              e.FeeCents,
		Method:                e.Method,
		Status:                string(e.Status),
		StripePaymentIntentID: e.StripePaymentIntentID,
		CapturedAt:            e.CapturedAt,
		FailedAt:              e.FailedAt,
		DisputedAt:            e.DisputedAt,
		CapturePublishedAt:    e.CapturePublishedAt,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func ToTransferEntity(m *model.TransferModel) *entity.Transfer {
	if m == nil {
		return nil
	}

	return &entity.Transfer{
		ID:               m.ID,
		PoolID:           m.PoolID,
		AmountCents:      m.AmountCents,
		StripeTransferID: m.StripeTransferID,
		Status:           entity.TransferStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func ToTransferModel(e *entity.Transfer) *model.TransferModel {
	if e == nil {
		return nil
	}

	return &model.TransferModel{
		ID:               e.ID,
		PoolID:           e.PoolID,
		AmountCents:      e.AmountCents,
		StripeTransferID: e.StripeTransferID,
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func ToDisputeModel(e *entity.Dispute) *model.DisputeModel {
	if e == nil {
		return nil
	}

	return &model.DisputeModel{
		ID:              e.ID,
		StripeDisputeID: e.StripeDisputeID,
		ChargeID:        e.ChargeID,
		PaymentIntentID: e.PaymentIntentID,
		AmountCents:     e.AmountCents,
		Reason:          e.Reason,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
	}
}

func ToWebhookEventModel(e *entity.WebhookEvent) *model.WebhookEventModel {
	if e == nil {
		return nil
	}

	return &model.WebhookEventModel{
		ID:              e.ID,
		ProviderEventID: e.ProviderEventID,
		EventType:       e.EventType,
		Payload:         e.Payload,
		SignatureValid:  e.SignatureValid,
		Outcome:         string(e.Outcome),
		ProcessingError: e.ProcessingError,
		ProcessedAt:     e.ProcessedAt,
		CreatedAt:       e.CreatedAt,
	}
}
