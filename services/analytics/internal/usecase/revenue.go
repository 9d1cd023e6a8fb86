package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/services/analytics/internal/entity"
	"pool-fund/services/analytics/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var ErrInvalidSnapshot = errors.New("invalid user snapshot")

const (
	revenueCacheKey = "analytics:revenue"
	revenueCacheTTL = 5 * time.Minute
)

var (
	// Annual spread earned on pooled balances, accrued monthly.
	floatAnnualRate = decimal.RequireFromString("0.025")
	monthsPerYear   = decimal.NewFromInt(12)
	withdrawalFee   = decimal.RequireFromString("2.99")
)

// Aggregate rolls a user population up into monthly revenue. It only reads
// the snapshot it is given.
func Aggregate(users []entity.UserSnapshot) entity.Revenue {
	subscription := decimal.Zero
	pooled := decimal.Zero
	fees := decimal.Zero
	unknown := 0

	for _, u := range users {
		tier := entity.NormalizeTier(u.Tier)
		price, ok := entity.TierPrice(tier)
		if !ok {
			unknown++
		}
		subscription = subscription.Add(price)
		pooled = pooled.Add(decimal.New(u.PooledBalanceCents, -2))
		if tier == entity.TierFree {
			fees = fees.Add(withdrawalFee.Mul(decimal.NewFromInt(int64(u.MonthlyWithdrawals))))
		}
	}

	floatRevenue := pooled.Mul(floatAnnualRate).Div(monthsPerYear)

	subscription = subscription.Round(2)
	floatRevenue = floatRevenue.Round(2)
	fees = fees.Round(2)

	return entity.Revenue{
		SubscriptionRevenue: subscription,
		FloatRevenue:        floatRevenue,
		TransactionFees:     fees,
		TotalRevenue:        subscription.Add(floatRevenue).Add(fees),
		UserCount:           len(users),
		UnknownTiers:        unknown,
	}
}

type RevenueReport struct {
	entity.Revenue
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"cached"`
}

type RevenueUseCase interface {
	GetRevenue(ctx context.Context, refresh bool) (*RevenueReport, error)
	AggregateSnapshot(users []entity.UserSnapshot) (*entity.Revenue, error)
}

type revenueUseCase struct {
	revenueRepo persistent.RevenueRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewRevenueUseCase builds the usecase; a nil redisClient disables caching.
func NewRevenueUseCase(revenueRepo persistent.RevenueRepository, redisClient *redis.Client, logger *logger.Logger) RevenueUseCase {
	return &revenueUseCase{
		revenueRepo: revenueRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *revenueUseCase) GetRevenue(ctx context.Context, refresh bool) (*RevenueReport, error) {
	if !refresh {
		if report, ok := uc.cachedReport(ctx); ok {
			return report, nil
		}
	}

	users, err := uc.revenueRepo.ListUserSnapshots(ctx)
	if err != nil {
		uc.logger.Error("Failed to load user snapshots: %v", err)
		return nil, fmt.Errorf("failed to load user snapshots: %w", err)
	}

	report := &RevenueReport{
		Revenue:     Aggregate(users),
		GeneratedAt: time.Now().UTC(),
	}
	if report.UnknownTiers > 0 {
		uc.logger.Warn("Revenue rollup found %d users with an unknown tier", report.UnknownTiers)
	}

	uc.storeReport(ctx, report)
	return report, nil
}

func (uc *revenueUseCase) AggregateSnapshot(users []entity.UserSnapshot) (*entity.Revenue, error) {
	for _, u := range users {
		if u.PooledBalanceCents < 0 || u.MonthlyWithdrawals < 0 {
			return nil, fmt.Errorf("%w: user %q has negative values", ErrInvalidSnapshot, u.UserID)
		}
	}
	revenue := Aggregate(users)
	return &revenue, nil
}

func (uc *revenueUseCase) cachedReport(ctx context.Context) (*RevenueReport, bool) {
	if uc.redisClient == nil {
		return nil, false
	}
	cached, err := uc.redisClient.Get(ctx, revenueCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("Failed to read revenue cache: %v", err)
		}
		return nil, false
	}
	var report RevenueReport
	if err := json.Unmarshal([]byte(cached), &report); err != nil {
		uc.logger.Warn("Discarding unreadable revenue cache entry: %v", err)
		return nil, false
	}
	report.Cached = true
	return &report, true
}

func (uc *revenueUseCase) storeReport(ctx context.Context, report *RevenueReport) {
	if uc.redisClient == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		uc.logger.Warn("Failed to encode revenue report: %v", err)
		return
	}
	if err := uc.redisClient.Set(ctx, revenueCacheKey, payload, revenueCacheTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache revenue report: %v", err)
	}
}
