package usecase

import (
	"context"
	"encoding/json"

	"pool-fund/pkg/logger"
	"pool-fund/services/ledger/internal/entity"
)

type RouteResult struct {
	Handled bool           `json:"handled"`
	Outcome entity.Outcome `json:"outcome"`
}

type eventHandler func(ctx context.Context, event *entity.Event) (entity.Outcome, error)

// EventRouter dispatches parsed provider events to the ledger. Only storage
// failures come back as errors; everything else is logged and acknowledged.
type EventRouter struct {
	handlers map[entity.EventKind]eventHandler
	ledger   LedgerUseCase
	logger   *logger.Logger
}

func NewEventRouter(ledger LedgerUseCase, logger *logger.Logger) *EventRouter {
	r := &EventRouter{
		ledger: ledger,
		logger: logger,
	}
	r.handlers = map[entity.EventKind]eventHandler{
		entity.EventPaymentSucceeded: r.paymentStatus(entity.TransactionCaptured),
		entity.EventPaymentFailed:    r.paymentStatus(entity.TransactionFailed),
		entity.EventDisputeCreated:   r.disputeCreated,
		entity.EventTransferCreated:  r.transferStatus(entity.TransferInTransit),
		entity.EventTransferUpdated:  r.transferStatus(""),
	}
	return r
}

func (r *EventRouter) Route(ctx context.Context, event *entity.Event) (RouteResult, error) {
	handler, ok := r.handlers[event.Kind]
	if !ok {
		r.logger.Info("Unhandled event %s of type %s", event.ID, event.Type)
		return RouteResult{Handled: false, Outcome: entity.OutcomeIgnored}, nil
	}

	outcome, err := handler(ctx, event)
	if err != nil {
		return RouteResult{Handled: true}, err
	}
	return RouteResult{Handled: true, Outcome: outcome}, nil
}

func (r *EventRouter) paymentStatus(target entity.TransactionStatus) eventHandler {
	return func(ctx context.Context, event *entity.Event) (entity.Outcome, error) {
		var obj entity.PaymentIntentObject
		if err := json.Unmarshal(event.Object, &obj); err != nil || obj.ID == "" {
			r.logger.Warn("Event %s carries no usable payment intent", event.ID)
			return entity.OutcomeIgnored, nil
		}
		return r.ledger.ApplyTransactionEvent(ctx, obj.ID, target, event.Created)
	}
}

// transferStatus uses fixed when set, otherwise the status carried on the object.
func (r *EventRouter) transferStatus(fixed entity.TransferStatus) eventHandler {
	return func(ctx context.Context, event *entity.Event) (entity.Outcome, error) {
		var obj entity.TransferObject
		if err := json.Unmarshal(event.Object, &obj); err != nil || obj.ID == "" {
			r.logger.Warn("Event %s carries no usable transfer", event.ID)
			return entity.OutcomeIgnored, nil
		}

		target := fixed
		if target == "" {
			target = entity.TransferStatus(obj.Status)
		}
		return r.ledger.ApplyTransferEvent(ctx, obj.ID, target, event.Created)
	}
}

func (r *EventRouter) disputeCreated(ctx context.Context, event *entity.Event) (entity.Outcome, error) {
	var obj entity.DisputeObject
	if err := json.Unmarshal(event.Object, &obj); err != nil || obj.ID == "" {
		r.logger.Warn("Event %s carries no usable dispute", event.ID)
		return entity.OutcomeIgnored, nil
	}

	return r.ledger.RecordDispute(ctx, &entity.Dispute{
		StripeDisputeID: obj.ID,
		ChargeID:        obj.Charge,
		PaymentIntentID: obj.PaymentIntent,
		AmountCents:     obj.Amount,
		Reason:          obj.Reason,
		Status:          obj.Status,
	}, event.Created)
}
