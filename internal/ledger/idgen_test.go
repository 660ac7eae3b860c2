package ledger

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccountNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{10}$`)

	seen := make(map[string]struct{})
	taken := func(n string) bool {
		_, ok := seen[n]
		return ok
	}

	for range 500 {
		number, err := generateAccountNumber(taken)
		require.NoError(t, err)
		require.Regexp(t, pattern, number)

		_, dup := seen[number]
		require.False(t, dup, "generated a number reported as taken")
		seen[number] = struct{}{}
	}

	assert.Len(t, seen, 500)
}

func TestGenerateAccountNumberExhaustion(t *testing.T) {
	_, err := generateAccountNumber(func(string) bool { return true })
	require.ErrorIs(t, err, ErrIDSpaceExhausted)
}

func TestGenerateAccountNumberSkipsCollisions(t *testing.T) {
	// Reject the first few draws; the generator must keep trying.
	rejected := 0
	number, err := generateAccountNumber(func(string) bool {
		if rejected < 3 {
			rejected++
			return true
		}
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rejected)
	assert.Len(t, number, 10)
}
