package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_Schedule(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		method Method
		want   int64
	}{
		{"paypal 100 dollars", 10000, MethodPayPal, 320},
		{"venmo 100 dollars", 10000, MethodVenmo, 250},
		{"cashapp 100 dollars", 10000, MethodCashApp, 300},
		{"bank is free", 10000, MethodBank, 0},
		{"peer is free", 10000, MethodPeer, 0},
		{"zero amount paypal keeps flat part", 0, MethodPayPal, 30},
		{"venmo half cent rounds up", 20, MethodVenmo, 1},      // 0.5
		{"venmo below half rounds down", 19, MethodVenmo, 0},   // 0.475
		{"cashapp 0.51 rounds up", 17, MethodCashApp, 1},       // 0.51
		{"paypal 2.9 percent of 1234", 1234, MethodPayPal, 66}, // 35.786 -> 36 + 30
		{"venmo 1 cent", 1, MethodVenmo, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.amount, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_UnknownMethod(t *testing.T) {
	_, err := Calculate(10000, Method("zelle"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestCalculate_NegativeAmount(t *testing.T) {
	_, err := Calculate(-1, MethodVenmo)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCalculate_Deterministic(t *testing.T) {
	for _, m := range Methods() {
		first, err := Calculate(98765, m)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, _ := Calculate(98765, m)
			assert.Equal(t, first, again)
		}
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("  PayPal ")
	require.NoError(t, err)
	assert.Equal(t, MethodPayPal, m)

	_, err = ParseMethod("")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestQuote(t *testing.T) {
	b, err := Quote(10000, MethodPayPal)
	require.NoError(t, err)
	assert.Equal(t, int64(320), b.FeeCents)
	assert.Equal(t, int64(10320), b.TotalCents)
}

func TestDivRoundHalfAway(t *testing.T) {
	assert.Equal(t, int64(1), divRoundHalfAway(5, 10))
	assert.Equal(t, int64(-1), divRoundHalfAway(-5, 10))
	assert.Equal(t, int64(0), divRoundHalfAway(4, 10))
	assert.Equal(t, int64(0), divRoundHalfAway(-4, 10))
}
