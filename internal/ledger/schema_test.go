package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-cli/teller/internal/rowstore"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "accountnumber", normalizeHeader("Account Number"))
	assert.Equal(t, "accountnumber", normalizeHeader("ACCOUNT_NUMBER!"))
	assert.Equal(t, "balance", normalizeHeader(" Balance ($) "))
	assert.Equal(t, "dateandtime", normalizeHeader("Date & Time"))
}

func TestResolveAccountsSchema(t *testing.T) {
	tests := []struct {
		name   string
		header rowstore.Row
	}{
		{"canonical", rowstore.Row{"Name", "Account Number", "Balance", "Last Updated"}},
		{"shouting with punctuation", rowstore.Row{"NAME", "ACCOUNT-NUMBER", "BALANCE ($)", "LAST_UPDATED"}},
		{"reordered aliases", rowstore.Row{"Current Balance", "Acct No.", "Account Holder"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := resolveAccountsSchema(tt.header)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.name, 0)
			assert.GreaterOrEqual(t, s.number, 0)
			assert.GreaterOrEqual(t, s.balance, 0)
			assert.Equal(t, len(tt.header), s.width)
		})
	}
}

func TestResolveAccountsSchemaOptionalUpdated(t *testing.T) {
	s, err := resolveAccountsSchema(rowstore.Row{"Name", "Account Number", "Balance"})
	require.NoError(t, err)
	assert.Equal(t, -1, s.updated)
}

func TestResolveAccountsSchemaMissingColumn(t *testing.T) {
	_, err := resolveAccountsSchema(rowstore.Row{"Name", "Balance"})
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestResolveJournalSchema(t *testing.T) {
	s, err := resolveJournalSchema(rowstore.Row{"Account Number", "Type", "Amount", "Balance After", "Date & Time", "Reference"})
	require.NoError(t, err)
	assert.Equal(t, 5, s.reference)

	// Drifted variant without a reference column.
	s, err = resolveJournalSchema(rowstore.Row{"ACCT NO", "Transaction Type", "amount", "New Balance", "Timestamp"})
	require.NoError(t, err)
	assert.Equal(t, -1, s.reference)

	_, err = resolveJournalSchema(rowstore.Row{"Account Number", "Amount"})
	require.ErrorIs(t, err, ErrBadHeader)
}
