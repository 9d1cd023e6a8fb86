package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pool-fund/services/ledger/internal/entity"
	"pool-fund/services/ledger/internal/repo/persistent"

	"github.com/google/uuid"
)

// memoryLedgerRepository mirrors the conditional-write semantics of the gorm repository.
type memoryLedgerRepository struct {
	mu            sync.Mutex
	pools         map[string]*entity.PoolBalance
	transactions  map[string]*entity.Transaction
	transfers     map[string]*entity.Transfer
	disputes      map[string]*entity.Dispute
	webhookEvents map[string]*entity.WebhookEvent
	casCalls      int
}

func newMemoryLedgerRepository() *memoryLedgerRepository {
	return &memoryLedgerRepository{
		pools:         make(map[string]*entity.PoolBalance),
		transactions:  make(map[string]*entity.Transaction),
		transfers:     make(map[string]*entity.Transfer),
		disputes:      make(map[string]*entity.Dispute),
		webhookEvents: make(map[string]*entity.WebhookEvent),
	}
}

func (r *memoryLedgerRepository) addPool(id string, goal, current int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[id] = &entity.PoolBalance{ID: id, GoalAmountCents: goal, CurrentAmountCents: current}
}

func (r *memoryLedgerRepository) poolBalance(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pools[id].CurrentAmountCents
}

func (r *memoryLedgerRepository) GetPool(ctx context.Context, poolID string) (*entity.PoolBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pool, ok := r.pools[poolID]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *pool
	return &cp, nil
}

func (r *memoryLedgerRepository) CreateTransaction(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	cp := *transaction
	r.transactions[transaction.StripePaymentIntentID] = &cp
	return nil
}

func (r *memoryLedgerRepository) GetTransactionByPaymentIntent(ctx context.Context, paymentIntentID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[paymentIntentID]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *transaction
	return &cp, nil
}

func (r *memoryLedgerRepository) CompareAndSetTransactionStatus(ctx context.Context, change persistent.TransactionStatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casCalls++
	transaction, ok := r.transactions[change.PaymentIntentID]
	if !ok || transaction.Status != change.From {
		return false, nil
	}
	if change.PoolDeltaCents != 0 {
		pool, ok := r.pools[change.PoolID]
		if !ok {
			return false, persistent.ErrNotFound
		}
		pool.CurrentAmountCents += change.PoolDeltaCents
	}

	at := change.At
	transaction.Status = change.To
	transaction.UpdatedAt = at
	switch change.To {
	case entity.TransactionCaptured:
		transaction.CapturedAt = &at
	case entity.TransactionFailed:
		transaction.FailedAt = &at
	case entity.TransactionDisputed:
		transaction.DisputedAt = &at
	}
	return true, nil
}

func (r *memoryLedgerRepository) MarkCapturePublished(ctx context.Context, paymentIntentID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction, ok := r.transactions[paymentIntentID]; ok && transaction.CapturePublishedAt == nil {
		transaction.CapturePublishedAt = &at
	}
	return nil
}

func (r *memoryLedgerRepository) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, transaction := range r.transactions {
		if transaction.UserID == userID {
			cp := *transaction
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StripePaymentIntentID < out[j].StripePaymentIntentID })
	return out, nil
}

func (r *memoryLedgerRepository) CreateTransfer(ctx context.Context, transfer *entity.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	cp := *transfer
	r.transfers[transfer.StripeTransferID] = &cp
	return nil
}

func (r *memoryLedgerRepository) GetTransferByStripeID(ctx context.Context, stripeTransferID string) (*entity.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transfer, ok := r.transfers[stripeTransferID]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	cp := *transfer
	return &cp, nil
}

func (r *memoryLedgerRepository) CompareAndSetTransferStatus(ctx context.Context, change persistent.TransferStatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transfer, ok := r.transfers[change.StripeTransferID]
	if !ok || transfer.Status != change.From {
		return false, nil
	}
	if change.PoolDeltaCents != 0 {
		pool, ok := r.pools[change.PoolID]
		if !ok {
			return false, persistent.ErrNotFound
		}
		pool.CurrentAmountCents += change.PoolDeltaCents
	}
	transfer.Status = change.To
	transfer.UpdatedAt = change.At
	return true, nil
}

func (r *memoryLedgerRepository) CreateDispute(ctx context.Context, dispute *entity.Dispute) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.disputes[dispute.StripeDisputeID]; ok {
		return false, nil
	}
	cp := *dispute
	r.disputes[dispute.StripeDisputeID] = &cp
	return true, nil
}

func (r *memoryLedgerRepository) RecordWebhookEvent(ctx context.Context, event *entity.WebhookEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.webhookEvents[event.ProviderEventID]; ok {
		return false, nil
	}
	cp := *event
	r.webhookEvents[event.ProviderEventID] = &cp
	return true, nil
}

func (r *memoryLedgerRepository) MarkWebhookEventProcessed(ctx context.Context, providerEventID string, outcome entity.Outcome, processingErr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event, ok := r.webhookEvents[providerEventID]; ok {
		event.Outcome = outcome
		event.ProcessingError = processingErr
	}
	return nil
}

var _ persistent.LedgerRepository = (*memoryLedgerRepository)(nil)

type recordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]interface{}
	failures int
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[string][]interface{})}
}

func (p *recordingPublisher) Publish(routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failures > 0 {
		p.failures--
		return errors.New("channel closed")
	}
	p.messages[routingKey] = append(p.messages[routingKey], payload)
	return nil
}

func (p *recordingPublisher) count(routingKey string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[routingKey])
}

type recordingArchiver struct {
	keys []string
}

func (a *recordingArchiver) PutObject(key string, body []byte, contentType string) (string, error) {
	a.keys = append(a.keys, key)
	return "memory://" + key, nil
}
