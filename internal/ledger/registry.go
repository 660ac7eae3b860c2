package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/teller-cli/teller/internal/constants"
	"github.com/teller-cli/teller/internal/money"
	"github.com/teller-cli/teller/internal/rowstore"
)

// Account is the registry's view of one account row. The registry owns the
// authoritative balance; the journal is derived from it, never the reverse.
type Account struct {
	Name        string
	Number      string
	Balance     decimal.Decimal
	LastUpdated time.Time
}

type registry struct {
	store rowstore.RowStore
	log   zerolog.Logger
}

// accountRef locates a live account row in the sheet.
type accountRef struct {
	account *Account
	rowIdx  int
	schema  accountsSchema
}

func (r *registry) load() ([]rowstore.Row, accountsSchema, error) {
	rows, err := r.store.ListRows(rowstore.TableAccounts)
	if err != nil {
		return nil, accountsSchema{}, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(rows) == 0 {
		return nil, accountsSchema{}, fmt.Errorf("%w: accounts sheet has no header row", ErrBadHeader)
	}

	schema, err := resolveAccountsSchema(rows[0])
	if err != nil {
		return nil, accountsSchema{}, err
	}

	return rows, schema, nil
}

// find scans the sheet for the account number. Closed accounts have a
// blanked number cell and never match.
func (r *registry) find(number string) (accountRef, error) {
	rows, schema, err := r.load()
	if err != nil {
		return accountRef{}, err
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if schema.number >= len(row) {
			continue
		}
		if strings.TrimSpace(row[schema.number]) != number {
			continue
		}

		acc, err := r.parseAccount(row, schema)
		if err != nil {
			return accountRef{}, fmt.Errorf("account %s: %w", number, err)
		}
		return accountRef{account: acc, rowIdx: i, schema: schema}, nil
	}

	return accountRef{}, fmt.Errorf("account %s: %w", number, ErrAccountNotFound)
}

func (r *registry) parseAccount(row rowstore.Row, schema accountsSchema) (*Account, error) {
	acc := &Account{
		Number: strings.TrimSpace(row[schema.number]),
	}

	if schema.name < len(row) {
		acc.Name = strings.TrimSpace(row[schema.name])
	}

	if schema.balance < len(row) {
		balance, err := money.ParseBalance(row[schema.balance])
		if err != nil {
			return nil, err
		}
		acc.Balance = balance
	}

	if schema.updated >= 0 && schema.updated < len(row) {
		if raw := strings.TrimSpace(row[schema.updated]); raw != "" {
			if ts, err := time.ParseInLocation(constants.DateTimeFormat, raw, time.Local); err == nil {
				acc.LastUpdated = ts
			}
		}
	}

	return acc, nil
}

// list returns every live account in sheet order.
func (r *registry) list() ([]*Account, error) {
	rows, schema, err := r.load()
	if err != nil {
		return nil, err
	}

	var accounts []*Account
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if schema.number >= len(row) || strings.TrimSpace(row[schema.number]) == "" {
			continue
		}

		acc, err := r.parseAccount(row, schema)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, nil
}

// create appends a new account row. The caller holds the create lock and
// has already allocated a free number.
func (r *registry) create(name, number string, balance decimal.Decimal, now time.Time) (*Account, error) {
	_, schema, err := r.load()
	if err != nil {
		return nil, err
	}

	row := make(rowstore.Row, schema.width)
	row[schema.name] = name
	row[schema.number] = number
	row[schema.balance] = balance.String()
	if schema.updated >= 0 {
		row[schema.updated] = now.Format(constants.DateTimeFormat)
	}

	if err := r.store.AppendRow(rowstore.TableAccounts, row); err != nil {
		return nil, fmt.Errorf("failed to write account row: %w", err)
	}

	return &Account{Name: name, Number: number, Balance: balance, LastUpdated: now}, nil
}

// applyDelta is the sole balance mutation primitive: read the current
// balance, reject any result below zero, write the new balance back. The
// read and the write are separate store calls, so the caller must hold the
// account's lock for the whole span.
func (r *registry) applyDelta(number string, delta decimal.Decimal, now time.Time) (*Account, error) {
	ref, err := r.find(number)
	if err != nil {
		return nil, err
	}

	newBalance := ref.account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf(
			"account %s: balance %s, change %s: %w",
			number, money.Format(ref.account.Balance), money.Format(delta), ErrInsufficientFunds,
		)
	}

	err = r.store.UpdateCell(rowstore.TableAccounts, ref.rowIdx, ref.schema.balance, newBalance.String())
	if err != nil {
		return nil, fmt.Errorf("failed to write balance of account %s: %w", number, err)
	}

	if ref.schema.updated >= 0 {
		stamp := now.Format(constants.DateTimeFormat)
		if err := r.store.UpdateCell(rowstore.TableAccounts, ref.rowIdx, ref.schema.updated, stamp); err != nil {
			// The balance is committed; a stale timestamp is not worth
			// failing the operation over.
			r.log.Warn().Str("account", number).Err(err).Msg("failed to update last-updated cell")
		}
	}

	ref.account.Balance = newBalance
	ref.account.LastUpdated = now
	return ref.account, nil
}

// retire blanks the number cell of a closed account. Row stores cannot
// delete rows, so a blank number is what marks the row dead.
func (r *registry) retire(ref accountRef) error {
	err := r.store.UpdateCell(rowstore.TableAccounts, ref.rowIdx, ref.schema.number, "")
	if err != nil {
		return fmt.Errorf("failed to retire account %s: %w", ref.account.Number, err)
	}
	return nil
}
