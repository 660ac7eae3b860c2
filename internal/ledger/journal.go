package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teller-cli/teller/internal/constants"
	"github.com/teller-cli/teller/internal/money"
	"github.com/teller-cli/teller/internal/rowstore"
)

type EntryType string

const (
	EntryCreated     EntryType = "Created"
	EntryDeposit     EntryType = "Deposit"
	EntryWithdrawal  EntryType = "Withdrawal"
	EntryTransferOut EntryType = "TransferOut"
	EntryTransferIn  EntryType = "TransferIn"
	EntryDeleted     EntryType = "Deleted"
)

// Entry is one immutable journal record. BalanceAfter equals the account's
// balance immediately after the event, so replaying an account's entries
// reconstructs its balance exactly.
type Entry struct {
	AccountNumber string
	Type          EntryType
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	Timestamp     time.Time
	Reference     string
}

// journal is the append-only event log. It has no update or delete
// operations and is never the source of truth for a current balance.
type journal struct {
	store rowstore.RowStore
}

func (j *journal) load() ([]rowstore.Row, journalSchema, error) {
	rows, err := j.store.ListRows(rowstore.TableTransactions)
	if err != nil {
		return nil, journalSchema{}, fmt.Errorf("failed to list transactions: %w", err)
	}
	if len(rows) == 0 {
		return nil, journalSchema{}, fmt.Errorf("%w: transactions sheet has no header row", ErrBadHeader)
	}

	schema, err := resolveJournalSchema(rows[0])
	if err != nil {
		return nil, journalSchema{}, err
	}

	return rows, schema, nil
}

// append writes one record. Cells are placed by the resolved header, so a
// reordered or extended transactions sheet keeps working.
func (j *journal) append(number string, typ EntryType, amount, balanceAfter decimal.Decimal, now time.Time) (*Entry, error) {
	_, schema, err := j.load()
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		AccountNumber: number,
		Type:          typ,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Timestamp:     now,
		Reference:     uuid.NewString(),
	}

	row := make(rowstore.Row, schema.width)
	row[schema.number] = number
	row[schema.entryType] = string(typ)
	row[schema.amount] = money.Format(amount)
	row[schema.balanceAfter] = money.Format(balanceAfter)
	row[schema.timestamp] = now.Format(constants.DateTimeFormat)
	if schema.reference >= 0 {
		row[schema.reference] = entry.Reference
	}

	if err := j.store.AppendRow(rowstore.TableTransactions, row); err != nil {
		return nil, fmt.Errorf("failed to append journal record: %w", err)
	}

	return entry, nil
}

// history returns every record for the account, oldest first.
func (j *journal) history(number string) ([]*Entry, error) {
	rows, schema, err := j.load()
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if schema.number >= len(row) || strings.TrimSpace(row[schema.number]) != number {
			continue
		}

		entry, err := j.parseEntry(row, schema)
		if err != nil {
			return nil, fmt.Errorf("journal row %d: %w", i, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (j *journal) parseEntry(row rowstore.Row, schema journalSchema) (*Entry, error) {
	entry := &Entry{
		AccountNumber: strings.TrimSpace(row[schema.number]),
		Type:          EntryType(strings.TrimSpace(row[schema.entryType])),
	}

	amount, err := money.ParseBalance(row[schema.amount])
	if err != nil {
		return nil, err
	}
	entry.Amount = amount

	after, err := money.ParseBalance(row[schema.balanceAfter])
	if err != nil {
		return nil, err
	}
	entry.BalanceAfter = after

	if raw := strings.TrimSpace(row[schema.timestamp]); raw != "" {
		ts, err := time.ParseInLocation(constants.DateTimeFormat, raw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", raw, err)
		}
		entry.Timestamp = ts
	}

	if schema.reference >= 0 && schema.reference < len(row) {
		entry.Reference = strings.TrimSpace(row[schema.reference])
	}

	return entry, nil
}
