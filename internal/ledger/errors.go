package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teller-cli/teller/internal/money"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidAccountNumber = errors.New("account number must be exactly 10 digits")
	ErrInvalidName          = errors.New("invalid account name")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrSameAccount          = errors.New("can't transfer an account to itself")
	ErrTransferBelowMinimum = errors.New("transfer amount below the minimum")
	ErrAccountNotEmpty      = errors.New("account balance must be zero")
	ErrBadHeader            = errors.New("unrecognized table header")
	ErrIDSpaceExhausted     = errors.New("gave up generating a unique account number")

	// ErrInvalidAmount is re-exported so callers can match every
	// validation failure against one package.
	ErrInvalidAmount = money.ErrInvalidAmount
)

// PartialTransferError reports a transfer whose debit committed but whose
// credit could not be applied and whose rollback also failed. It carries
// everything manual reconciliation needs.
type PartialTransferError struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Err         error
}

func (e *PartialTransferError) Error() string {
	return fmt.Sprintf(
		"partial transfer: %s debited %s (amount %s + fee %s) but %s was not credited: %v",
		e.FromAccount, money.Format(e.Amount.Add(e.Fee)),
		money.Format(e.Amount), money.Format(e.Fee),
		e.ToAccount, e.Err,
	)
}

func (e *PartialTransferError) Unwrap() error {
	return e.Err
}
