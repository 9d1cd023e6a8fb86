// Package fee prices payment methods. All amounts are integer cents.
package fee

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMethod = errors.New("unknown payment method")
	ErrInvalidAmount = errors.New("amount must not be negative")
)

type Method string

const (
	MethodVenmo   Method = "venmo"
	MethodCashApp Method = "cashapp"
	MethodPayPal  Method = "paypal"
	MethodBank    Method = "bank"
	MethodPeer    Method = "peer"
)

// rate is a percentage in basis points plus a flat part in cents.
type rate struct {
	basisPoints int64
	flatCents   int64
}

var schedule = map[Method]rate{
	MethodVenmo:   {basisPoints: 250},
	MethodCashApp: {basisPoints: 300},
	MethodPayPal:  {basisPoints: 290, flatCents: 30},
	MethodBank:    {},
	MethodPeer:    {},
}

// Methods lists the supported methods in display order.
func Methods() []Method {
	return []Method{MethodVenmo, MethodCashApp, MethodPayPal, MethodBank, MethodPeer}
}

func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schedule[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// Calculate returns the fee for amountCents paid with method. The percentage part
// is rounded to the nearest cent with halves rounded away from zero.
func Calculate(amountCents int64, method Method) (int64, error) {
	r, ok := schedule[method]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if amountCents < 0 {
		return 0, ErrInvalidAmount
	}
	return divRoundHalfAway(amountCents*r.basisPoints, 10000) + r.flatCents, nil
}

type Breakdown struct {
	Method      Method `json:"method"`
	AmountCents int64  `json:"amount_cents"`
	FeeCents    int64  `json:"fee_cents"`
	TotalCents  int64  `json:"total_cents"`
}

func Quote(amountCents int64, method Method) (*Breakdown, error) {
	f, err := Calculate(amountCents, method)
	if err != nil {
		return nil, err
	}
	return &Breakdown{
		Method:      method,
		AmountCents: amountCents,
		FeeCents:    f,
		TotalCents:  amountCents + f,
	}, nil
}

func divRoundHalfAway(num, den int64) int64 {
	if num < 0 {
		return -((-num + den/2) / den)
	}
	return (num + den/2) / den
}
