package usecase

import (
	"context"
	"fmt"

	"pool-fund/pkg/logger"
	"pool-fund/services/ledger/internal/entity"
	"pool-fund/services/ledger/internal/repo/persistent"
	"pool-fund/services/ledger/internal/webhook"
)

// Archiver keeps a copy of raw deliveries. Satisfied by *s3.Client.
type Archiver interface {
	PutObject(key string, body []byte, contentType string) (string, error)
}

type DeliveryResult struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	Handled       bool           `json:"handled"`
	Outcome       entity.Outcome `json:"outcome"`
	FirstDelivery bool           `json:"first_delivery"`
}

type WebhookUseCase interface {
	HandleDelivery(ctx context.Context, payload []byte, signatureHeader string) (*DeliveryResult, error)
}

type webhookUseCase struct {
	verifier   *webhook.Verifier
	router     *EventRouter
	ledgerRepo persistent.LedgerRepository
	archiver   Archiver
	logger     *logger.Logger
}

// NewWebhookUseCase builds the delivery pipeline. archiver may be nil.
func NewWebhookUseCase(
	verifier *webhook.Verifier,
	router *EventRouter,
	ledgerRepo persistent.LedgerRepository,
	archiver Archiver,
	logger *logger.Logger,
) WebhookUseCase {
	return &webhookUseCase{
		verifier:   verifier,
		router:     router,
		ledgerRepo: ledgerRepo,
		archiver:   archiver,
		logger:     logger,
	}
}

// HandleDelivery verifies, logs and routes one delivery. Signature and decode
// failures return webhook.ErrInvalidSignature / webhook.ErrMalformedEvent and
// nothing is recorded; any other error means the delivery should be retried.
func (uc *webhookUseCase) HandleDelivery(ctx context.Context, payload []byte, signatureHeader string) (*DeliveryResult, error) {
	if err := uc.verifier.Verify(payload, signatureHeader); err != nil {
		uc.logger.Warn("Rejected webhook delivery: %v", err)
		return nil, err
	}

	event, err := webhook.ParseEvent(payload)
	if err != nil {
		uc.logger.Warn("Rejected webhook delivery: %v", err)
		return nil, err
	}

	first, err := uc.ledgerRepo.RecordWebhookEvent(ctx, &entity.WebhookEvent{
		ProviderEventID: event.ID,
		EventType:       event.Type,
		Payload:         payload,
		SignatureValid:  true,
	})
	if err != nil {
		uc.logger.Error("Failed to record webhook event %s: %v", event.ID, err)
		return nil, fmt.Errorf("failed to record webhook event: %w", err)
	}
	if first {
		uc.archive(event, payload)
	} else {
		uc.logger.Info("Redelivery of event %s (%s)", event.ID, event.Type)
	}

	routed, err := uc.router.Route(ctx, event)
	if err != nil {
		uc.logger.Error("Failed to apply event %s (%s): %v", event.ID, event.Type, err)
		if markErr := uc.ledgerRepo.MarkWebhookEventProcessed(ctx, event.ID, "", err.Error()); markErr != nil {
			uc.logger.Error("Failed to mark webhook event %s: %v", event.ID, markErr)
		}
		return nil, fmt.Errorf("failed to apply event %s: %w", event.ID, err)
	}

	if err := uc.ledgerRepo.MarkWebhookEventProcessed(ctx, event.ID, routed.Outcome, ""); err != nil {
		uc.logger.Error("Failed to mark webhook event %s: %v", event.ID, err)
	}

	return &DeliveryResult{
		EventID:       event.ID,
		EventType:     event.Type,
		Handled:       routed.Handled,
		Outcome:       routed.Outcome,
		FirstDelivery: first,
	}, nil
}

func (uc *webhookUseCase) archive(event *entity.Event, payload []byte) {
	if uc.archiver == nil {
		return
	}
	key := fmt.Sprintf("webhooks/%s/%s.json", event.Created.Format("2006/01/02"), event.ID)
	if _, err := uc.archiver.PutObject(key, payload, "application/json"); err != nil {
		uc.logger.Error("Failed to archive webhook event %s: %v", event.ID, err)
		return
	}
	uc.logger.Debug("Archived webhook event %s at %s", event.ID, key)
}
