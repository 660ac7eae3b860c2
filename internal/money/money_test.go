package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "150", "150"},
		{"decimal", "150.50", "150.5"},
		{"currency symbol", "$1,234.50", "1234.5"},
		{"euro symbol", "€99.99", "99.99"},
		{"spaces", " 1 000 ", "1000"},
		{"high precision", "0.001", "0.001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, input := range []string{"", "abc", "12.3.4", "0", "-5", "$", "0.00"} {
		t.Run("input "+input, func(t *testing.T) {
			_, err := ParseAmount(input)
			require.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestParseInitialBalance(t *testing.T) {
	got, err := ParseInitialBalance("0")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseInitialBalance("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseInitialBalance("100.00")
	require.NoError(t, err)
	assert.Equal(t, "100.00", Format(got))

	_, err = ParseInitialBalance("-1")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseBalanceLenient(t *testing.T) {
	got, err := ParseBalance("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseBalance("-12.50")
	require.NoError(t, err)
	assert.Equal(t, "-12.50", Format(got))

	_, err = ParseBalance("garbage")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormatRounding(t *testing.T) {
	// Repeated additions keep full precision internally; only Format
	// rounds to two places.
	sum := decimal.Zero
	for range 10 {
		sum = sum.Add(decimal.RequireFromString("0.1"))
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "1.00", Format(sum))
	assert.Equal(t, "2.35", Format(decimal.RequireFromString("2.345")))
}
