// Package ledger implements the core banking engine: the account registry,
// the append-only transaction journal, and the deposit/withdraw/transfer
// operations composed on top of a plain row store.
package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/teller-cli/teller/internal/constants"
	"github.com/teller-cli/teller/internal/rowstore"
)

// Policy holds the transfer fee parameters.
type Policy struct {
	FeeRate     decimal.Decimal
	MinFee      decimal.Decimal
	MinTransfer decimal.Decimal
}

// Fee computes the transfer surcharge: max(MinFee, amount × FeeRate).
func (p Policy) Fee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(p.FeeRate)
	if fee.LessThan(p.MinFee) {
		return p.MinFee
	}
	return fee
}

// NewPolicy parses the fee parameters as configured.
func NewPolicy(feeRate, minFee, minTransfer string) (Policy, error) {
	var p Policy
	var err error

	if p.FeeRate, err = decimal.NewFromString(feeRate); err != nil {
		return p, fmt.Errorf("bad fee rate %q: %w", feeRate, err)
	}
	if p.MinFee, err = decimal.NewFromString(minFee); err != nil {
		return p, fmt.Errorf("bad minimum fee %q: %w", minFee, err)
	}
	if p.MinTransfer, err = decimal.NewFromString(minTransfer); err != nil {
		return p, fmt.Errorf("bad minimum transfer %q: %w", minTransfer, err)
	}

	return p, nil
}

// DefaultPolicy returns the built-in fee parameters.
func DefaultPolicy() Policy {
	p, err := NewPolicy(constants.DefaultFeeRate, constants.DefaultMinFee, constants.DefaultMinTransfer)
	if err != nil {
		panic(err)
	}
	return p
}

// TransferReceipt reports a completed transfer.
type TransferReceipt struct {
	From         *Account
	To           *Account
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	TotalDebit   decimal.Decimal
	OutReference string
	InReference  string
}

// Ledger is the operation surface exposed to the CLI. All mutating
// operations take per-account locks around their read-modify-write spans;
// the row store itself offers no cross-call transaction.
type Ledger struct {
	registry *registry
	journal  *journal
	policy   Policy
	locks    *accountLocks
	createMu sync.Mutex
	log      zerolog.Logger
}

func New(store rowstore.RowStore, policy Policy, log zerolog.Logger) *Ledger {
	retrying := newRetryingStore(store, log)
	return &Ledger{
		registry: &registry{store: retrying, log: log},
		journal:  &journal{store: retrying},
		policy:   policy,
		locks:    newAccountLocks(),
		log:      log,
	}
}

var accountNumberPattern = regexp.MustCompile(`^\d{10}$`)

// ValidateAccountNumber checks the fixed 10-digit format.
func ValidateAccountNumber(number string) error {
	if !accountNumberPattern.MatchString(number) {
		return fmt.Errorf("%q: %w", number, ErrInvalidAccountNumber)
	}
	return nil
}

// ValidateName checks an account holder name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < constants.MinNameLen {
		return fmt.Errorf("%w: need at least %d characters", ErrInvalidName, constants.MinNameLen)
	}
	if len([]rune(name)) > constants.MaxNameLen {
		return fmt.Errorf("%w: at most %d characters", ErrInvalidName, constants.MaxNameLen)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}
	return nil
}

// CreateAccount allocates a fresh account number, writes the account row
// and journals the opening balance. Creation is serialized because the
// free-number check and the row append are separate store calls.
func (l *Ledger) CreateAccount(name string, initialBalance decimal.Decimal) (*Account, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if initialBalance.Sign() < 0 {
		return nil, fmt.Errorf("%w: initial balance can't be negative", ErrInvalidAmount)
	}

	l.createMu.Lock()
	defer l.createMu.Unlock()

	rows, schema, err := l.registry.load()
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(rows))
	for i := 1; i < len(rows); i++ {
		if schema.number < len(rows[i]) {
			taken[strings.TrimSpace(rows[i][schema.number])] = struct{}{}
		}
	}

	number, err := generateAccountNumber(func(n string) bool {
		_, ok := taken[n]
		return ok
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	acc, err := l.registry.create(strings.TrimSpace(name), number, initialBalance, now)
	if err != nil {
		return nil, err
	}

	if _, err := l.journal.append(number, EntryCreated, initialBalance, initialBalance, now); err != nil {
		return acc, fmt.Errorf("account %s created but not journaled: %w", number, err)
	}

	l.log.Debug().Str("account", number).Str("balance", initialBalance.String()).Msg("account created")
	return acc, nil
}

// Deposit credits the account. The amount must be strictly positive.
func (l *Ledger) Deposit(number string, amount decimal.Decimal) (*Account, error) {
	if err := ValidateAccountNumber(number); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	unlock := l.locks.lock(number)
	defer unlock()

	now := time.Now()
	acc, err := l.registry.applyDelta(number, amount, now)
	if err != nil {
		return nil, err
	}

	if _, err := l.journal.append(number, EntryDeposit, amount, acc.Balance, now); err != nil {
		return acc, fmt.Errorf("deposit to %s applied but not journaled: %w", number, err)
	}

	l.log.Debug().Str("account", number).Str("amount", amount.String()).Msg("deposit")
	return acc, nil
}

// Withdraw debits the account; the balance can never go below zero.
func (l *Ledger) Withdraw(number string, amount decimal.Decimal) (*Account, error) {
	if err := ValidateAccountNumber(number); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	unlock := l.locks.lock(number)
	defer unlock()

	now := time.Now()
	acc, err := l.registry.applyDelta(number, amount.Neg(), now)
	if err != nil {
		return nil, err
	}

	if _, err := l.journal.append(number, EntryWithdrawal, amount, acc.Balance, now); err != nil {
		return acc, fmt.Errorf("withdrawal from %s applied but not journaled: %w", number, err)
	}

	l.log.Debug().Str("account", number).Str("amount", amount.String()).Msg("withdrawal")
	return acc, nil
}

// Transfer moves amount from one account to another, charging the fee to
// the sender. Debit and credit either both commit or the debit is rolled
// back; if even the rollback fails the caller gets a PartialTransferError
// with everything reconciliation needs.
func (l *Ledger) Transfer(from, to string, amount decimal.Decimal) (*TransferReceipt, error) {
	if err := ValidateAccountNumber(from); err != nil {
		return nil, err
	}
	if err := ValidateAccountNumber(to); err != nil {
		return nil, err
	}
	if from == to {
		return nil, ErrSameAccount
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(l.policy.MinTransfer) {
		return nil, fmt.Errorf("%w: minimum is %s", ErrTransferBelowMinimum, l.policy.MinTransfer.StringFixed(2))
	}

	fee := l.policy.Fee(amount)
	totalDebit := amount.Add(fee)

	unlock := l.locks.lockPair(from, to)
	defer unlock()

	// Fail before any mutation if the destination is missing.
	if _, err := l.registry.find(to); err != nil {
		return nil, err
	}

	now := time.Now()
	fromAcc, err := l.registry.applyDelta(from, totalDebit.Neg(), now)
	if err != nil {
		return nil, err
	}

	toAcc, err := l.registry.applyDelta(to, amount, now)
	if err != nil {
		if _, rbErr := l.registry.applyDelta(from, totalDebit, now); rbErr != nil {
			l.log.Error().
				Str("from", from).Str("to", to).
				Str("amount", amount.String()).Str("fee", fee.String()).
				AnErr("credit_err", err).AnErr("rollback_err", rbErr).
				Msg("partial transfer: debit committed, credit and rollback failed")
			return nil, &PartialTransferError{
				FromAccount: from,
				ToAccount:   to,
				Amount:      amount,
				Fee:         fee,
				Err:         errors.Join(err, rbErr),
			}
		}
		l.log.Warn().Str("from", from).Str("to", to).Err(err).Msg("transfer aborted, debit rolled back")
		return nil, fmt.Errorf("transfer aborted, debit rolled back: %w", err)
	}

	outEntry, err := l.journal.append(from, EntryTransferOut, totalDebit, fromAcc.Balance, now)
	if err != nil {
		return nil, fmt.Errorf("transfer %s -> %s committed but not journaled: %w", from, to, err)
	}

	inEntry, err := l.journal.append(to, EntryTransferIn, amount, toAcc.Balance, now)
	if err != nil {
		return nil, fmt.Errorf("transfer %s -> %s committed, credit side not journaled: %w", from, to, err)
	}

	l.log.Debug().
		Str("from", from).Str("to", to).
		Str("amount", amount.String()).Str("fee", fee.String()).
		Msg("transfer")

	return &TransferReceipt{
		From:         fromAcc,
		To:           toAcc,
		Amount:       amount,
		Fee:          fee,
		TotalDebit:   totalDebit,
		OutReference: outEntry.Reference,
		InReference:  inEntry.Reference,
	}, nil
}

// GetAccount returns the account without mutating anything.
func (l *Ledger) GetAccount(number string) (*Account, error) {
	if err := ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	ref, err := l.registry.find(number)
	if err != nil {
		return nil, err
	}
	return ref.account, nil
}

// GetBalance returns the current balance.
func (l *Ledger) GetBalance(number string) (decimal.Decimal, error) {
	acc, err := l.GetAccount(number)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

// GetHistory returns the account's journal, oldest first, truncated to the
// most recent limit entries (limit <= 0 means everything). Closed accounts
// keep their history.
func (l *Ledger) GetHistory(number string, limit int) ([]*Entry, error) {
	if err := ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	if _, err := l.registry.find(number); err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
		// Fall through: a retired account is absent from the registry but
		// its journal survives.
	}

	entries, err := l.journal.history(number)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("account %s: %w", number, ErrAccountNotFound)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// ListAccounts returns every open account in sheet order.
func (l *Ledger) ListAccounts() ([]*Account, error) {
	return l.registry.list()
}

// CloseAccount retires a zero-balance account and journals the deletion.
func (l *Ledger) CloseAccount(number string) error {
	if err := ValidateAccountNumber(number); err != nil {
		return err
	}

	unlock := l.locks.lock(number)
	defer unlock()

	ref, err := l.registry.find(number)
	if err != nil {
		return err
	}
	if !ref.account.Balance.IsZero() {
		return fmt.Errorf("account %s holds %s: %w", number, ref.account.Balance.StringFixed(2), ErrAccountNotEmpty)
	}

	if err := l.registry.retire(ref); err != nil {
		return err
	}

	now := time.Now()
	if _, err := l.journal.append(number, EntryDeleted, decimal.Zero, decimal.Zero, now); err != nil {
		return fmt.Errorf("account %s closed but not journaled: %w", number, err)
	}

	l.log.Debug().Str("account", number).Msg("account closed")
	return nil
}
