package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPlus    Tier = "plus"
	TierPremium Tier = "premium"
)

// Monthly subscription price per tier, in dollars.
var tierPrices = map[Tier]decimal.Decimal{
	TierFree:    decimal.Zero,
	TierPlus:    decimal.RequireFromString("4.99"),
	TierPremium: decimal.RequireFromString("9.99"),
}

// NormalizeTier lower-cases and trims a stored tier value.
func NormalizeTier(raw string) Tier {
	return Tier(strings.ToLower(strings.TrimSpace(raw)))
}

// TierPrice reports the monthly price of a tier and whether the tier is known.
func TierPrice(t Tier) (decimal.Decimal, bool) {
	price, ok := tierPrices[t]
	return price, ok
}

type UserSnapshot struct {
	UserID             string `json:"user_id"`
	Tier               string `json:"tier"`
	PooledBalanceCents int64  `json:"pooled_balance_cents"`
	MonthlyWithdrawals int    `json:"monthly_withdrawals"`
}

// Revenue is a monthly rollup in dollars, each component rounded to cents.
type Revenue struct {
	SubscriptionRevenue decimal.Decimal `json:"subscription_revenue"`
	FloatRevenue        decimal.Decimal `json:"float_revenue"`
	TransactionFees     decimal.Decimal `json:"transaction_fees"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	UserCount           int             `json:"user_count"`
	UnknownTiers        int             `json:"unknown_tiers"`
}
