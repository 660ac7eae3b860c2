package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// clean strips currency symbols, thousands separators and whitespace so
// inputs like "$1,234.50" or "1 000" parse the same as "1234.50".
func clean(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch r {
		case '$', '€', '£', '¥', ',', '_', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseAmount parses a transactional amount. Deposits, withdrawals and
// transfers must be strictly positive; zero is rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := clean(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}

	if d.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}

	return d, nil
}

// ParseInitialBalance parses an opening balance. Unlike transactional
// amounts it may be zero; empty input counts as zero.
func ParseInitialBalance(raw string) (decimal.Decimal, error) {
	cleaned := clean(raw)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}

	if d.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: initial balance can't be negative", ErrInvalidAmount)
	}

	return d, nil
}

// ParseBalance parses a balance cell read back from storage. Unlike the
// input parsers it accepts any sign, since validation happened at write
// time; an empty cell reads as zero.
func ParseBalance(raw string) (decimal.Decimal, error) {
	cleaned := clean(raw)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: stored balance %q is not a number", ErrInvalidAmount, raw)
	}
	return d, nil
}

// Format renders an amount with two decimal places for display and for
// journal rows. Internal arithmetic keeps full precision.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
