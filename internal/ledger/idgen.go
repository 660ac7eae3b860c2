package ledger

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

const maxGenerateAttempts = 1000

// generateAccountNumber draws random 10-digit numbers until one is free
// according to the taken predicate. The attempt bound exists so a drifting
// predicate can never turn this into an infinite loop; with a ten-digit
// space it is unreachable in practice.
//
// The check-then-use window is not atomic against the store, so account
// creation is serialized by the ledger's create lock.
func generateAccountNumber(taken func(string) bool) (string, error) {
	for range maxGenerateAttempts {
		n := 1_000_000_000 + rand.Int64N(9_000_000_000)
		number := strconv.FormatInt(n, 10)
		if !taken(number) {
			return number, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDSpaceExhausted, maxGenerateAttempts)
}
