package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/shared/money"
)

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10.995", "11.00"},
		{"0.125", "0.13"},
		{"100", "100.00"},
	}
	for _, tc := range cases {
		m := money.MustFromString(tc.in)
		assert.Equal(t, tc.want, m.Round().String(), "rounding %s", tc.in)
	}
}

func TestApplyPercent(t *testing.T) {
	base := money.MustFromString("100.00")

	up := base.ApplyPercent(decimal.NewFromInt(120))
	assert.Equal(t, "120.00", up.Round().String())

	down := base.ApplyPercent(decimal.NewFromInt(90))
	assert.Equal(t, "90.00", down.Round().String())

	exact := money.MustFromString("99.99").ApplyPercent(decimal.NewFromInt(110))
	assert.Equal(t, "109.99", exact.Round().String())
}

func TestArithmeticStaysExact(t *testing.T) {
	a := money.MustFromString("0.10")
	sum := money.Zero()
	for i := 0; i < 3; i++ {
		sum = sum.Add(a)
	}
	assert.True(t, sum.Equal(money.MustFromString("0.30")))

	assert.True(t, money.FromInt(10).MulInt(3).Equal(money.FromInt(30)))
	assert.True(t, money.FromInt(10).Sub(money.FromInt(4)).Equal(money.FromInt(6)))
}

func TestDivIntSpread(t *testing.T) {
	spread := money.FromInt(100).DivInt(3).Round()
	assert.Equal(t, "33.33", spread.String())
}

func TestPredicates(t *testing.T) {
	assert.True(t, money.Zero().IsZero())
	assert.False(t, money.FromInt(1).IsZero())
	assert.True(t, money.MustFromString("-0.01").IsNegative())
	assert.False(t, money.Zero().IsNegative())
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(money.MustFromString("99.9"))
	require.NoError(t, err)
	assert.Equal(t, `"99.90"`, string(out))

	var m money.Money
	require.NoError(t, json.Unmarshal([]byte(`"123.45"`), &m))
	assert.True(t, m.Equal(money.MustFromString("123.45")))

	require.NoError(t, json.Unmarshal([]byte(`50`), &m))
	assert.True(t, m.Equal(money.FromInt(50)))
}

func TestFromStringRejectsGarbage(t *testing.T) {
	_, err := money.FromString("not-a-number")
	require.Error(t, err)
}
