package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.50)
	b := NewMoneyUSDFromFloat(4.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))

	eur := Zero(EUR)
	_, err = a.Add(eur)
	assert.Error(t, err)
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(4)

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))

	_, err = a.Subtract(Zero(GBP))
	assert.Error(t, err)
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyUSDFromFloat(12.5)
	result := m.Multiply(decimal.NewFromInt(4))
	assert.True(t, result.Amount().Equal(decimal.NewFromInt(50)))
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyUSDFromFloat(3000)
	big := NewMoneyUSDFromFloat(6000)
	threshold := NewMoneyUSDFromFloat(5000)

	ge, err := big.GreaterThanOrEqual(threshold)
	require.NoError(t, err)
	assert.True(t, ge)

	ge, err = small.GreaterThanOrEqual(threshold)
	require.NoError(t, err)
	assert.False(t, ge)

	lt, err := small.LessThan(threshold)
	require.NoError(t, err)
	assert.True(t, lt)

	_, err = big.GreaterThanOrEqual(Zero(EUR))
	assert.Error(t, err)
}

func TestMoney_ZeroAndSigns(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1).IsNegative())
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyUSDFromFloat(125.5)
	assert.Equal(t, "125.50 USD", m.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSDFromFloat(42.42)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_UnmarshalDefaultsCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"9.99"}`), &m))
	assert.Equal(t, DefaultCurrency, m.Currency())
}
