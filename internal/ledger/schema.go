package ledger

import (
	"fmt"
	"strings"

	"github.com/teller-cli/teller/internal/rowstore"
)

// Column positions are never hard-coded: the backing sheet's header row is
// resolved into logical fields by case- and punctuation-insensitive name
// matching, once per operation. "Account Number", "account_number" and
// "ACCOUNT NO." all resolve to the same column.

type accountsSchema struct {
	name    int
	number  int
	balance int
	updated int // -1 when the sheet has no Last Updated column
	width   int
}

type journalSchema struct {
	number       int
	entryType    int
	amount       int
	balanceAfter int
	timestamp    int
	reference    int // -1 when absent
	width        int
}

var accountAliases = map[string][]string{
	"name":    {"name", "accountname", "holder", "accountholder"},
	"number":  {"accountnumber", "accountno", "acctno", "number"},
	"balance": {"balance", "currentbalance"},
	"updated": {"lastupdated", "updated", "updatedat"},
}

var journalAliases = map[string][]string{
	"number":    {"accountnumber", "accountno", "acctno", "number", "account"},
	"type":      {"type", "transactiontype"},
	"amount":    {"amount"},
	"after":     {"balanceafter", "newbalance", "resultingbalance"},
	"timestamp": {"datetime", "dateandtime", "date", "timestamp", "time"},
	"reference": {"reference", "ref", "transactionid"},
}

// normalizeHeader lowercases and strips everything that isn't a letter or
// digit, so punctuation and spacing drift in the sheet can't break lookup.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func findColumn(header rowstore.Row, aliases []string) int {
	for i, cell := range header {
		got := normalizeHeader(cell)
		for _, want := range aliases {
			if got == want {
				return i
			}
		}
	}
	return -1
}

func resolveAccountsSchema(header rowstore.Row) (accountsSchema, error) {
	s := accountsSchema{
		name:    findColumn(header, accountAliases["name"]),
		number:  findColumn(header, accountAliases["number"]),
		balance: findColumn(header, accountAliases["balance"]),
		updated: findColumn(header, accountAliases["updated"]),
		width:   len(header),
	}

	for field, idx := range map[string]int{"name": s.name, "account number": s.number, "balance": s.balance} {
		if idx < 0 {
			return s, fmt.Errorf("%w: accounts sheet has no %q column", ErrBadHeader, field)
		}
	}

	return s, nil
}

func resolveJournalSchema(header rowstore.Row) (journalSchema, error) {
	s := journalSchema{
		number:       findColumn(header, journalAliases["number"]),
		entryType:    findColumn(header, journalAliases["type"]),
		amount:       findColumn(header, journalAliases["amount"]),
		balanceAfter: findColumn(header, journalAliases["after"]),
		timestamp:    findColumn(header, journalAliases["timestamp"]),
		reference:    findColumn(header, journalAliases["reference"]),
		width:        len(header),
	}

	required := map[string]int{
		"account number": s.number,
		"type":           s.entryType,
		"amount":         s.amount,
		"balance after":  s.balanceAfter,
		"date & time":    s.timestamp,
	}
	for field, idx := range required {
		if idx < 0 {
			return s, fmt.Errorf("%w: transactions sheet has no %q column", ErrBadHeader, field)
		}
	}

	return s, nil
}
