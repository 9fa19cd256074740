package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	for _, code := range []string{"NGN", "USD", "GHS"} {
		c, err := NewCurrency(code)
		require.NoError(t, err)
		assert.Equal(t, code, c.Code())
	}

	for _, code := range []string{"", "ngn", "NG", "NGNN", "N1N"} {
		_, err := NewCurrency(code)
		assert.Error(t, err, code)
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCurrency("naira") })
}

func TestParse(t *testing.T) {
	m, err := Parse("400000", "NGN")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(400000)))
	assert.Equal(t, NGN, m.Currency())

	_, err = Parse("abc", "NGN")
	assert.Error(t, err)
	_, err = Parse("1", "xx")
	assert.Error(t, err)
}

func TestWholeUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{name: "whole amount", amount: "400000", want: 400000},
		{name: "fraction is truncated", amount: "120000.99", want: 120000},
		{name: "zero", amount: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(decimal.RequireFromString(tt.amount), NGN)
			assert.Equal(t, tt.want, got.WholeUnits())
		})
	}
}

func TestMoney_EqualAndString(t *testing.T) {
	a := FromFloat(1200000, NGN)
	b := New(decimal.NewFromInt(1200000), NGN)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(New(decimal.NewFromInt(1200000), MustCurrency("USD"))))
	assert.Equal(t, "1200000.00 NGN", a.String())
	assert.True(t, Zero(NGN).IsZero())
	assert.True(t, FromFloat(-1, NGN).IsNegative())
}
