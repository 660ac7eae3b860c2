package rowstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSeededHeaders(t *testing.T) {
	m := NewMemoryStore()

	rows, err := m.ListRows(TableAccounts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"Name", "Account Number", "Balance", "Last Updated"}, rows[0])

	rows, err = m.ListRows(TableTransactions)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestMemoryStoreAppendAndUpdate(t *testing.T) {
	m := NewMemoryStore()

	require.NoError(t, m.AppendRow(TableAccounts, Row{"Alice", "1234567890", "100", ""}))
	require.NoError(t, m.AppendRow(TableAccounts, Row{"Bob", "0987654321", "50", ""}))

	rows, err := m.ListRows(TableAccounts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alice", rows[1][0])

	require.NoError(t, m.UpdateCell(TableAccounts, 1, 2, "150"))
	rows, err = m.ListRows(TableAccounts)
	require.NoError(t, err)
	assert.Equal(t, "150", rows[1][2])
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.AppendRow(TableAccounts, Row{"Alice", "1234567890", "100", ""}))

	rows, err := m.ListRows(TableAccounts)
	require.NoError(t, err)
	rows[1][2] = "mutated"

	again, err := m.ListRows(TableAccounts)
	require.NoError(t, err)
	assert.Equal(t, "100", again[1][2])
}

func TestMemoryStoreErrors(t *testing.T) {
	m := NewMemoryStore()

	_, err := m.ListRows("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)

	err = m.AppendRow("nope", Row{"x"})
	assert.ErrorIs(t, err, ErrUnknownTable)

	err = m.UpdateCell(TableAccounts, 5, 0, "x")
	assert.ErrorIs(t, err, ErrRowOutOfRange)

	err = m.UpdateCell(TableAccounts, 0, 99, "x")
	assert.ErrorIs(t, err, ErrCellOutOfRange)
}

func TestMemoryStoreFailNext(t *testing.T) {
	m := NewMemoryStore()
	m.FailNext(2)

	_, err := m.ListRows(TableAccounts)
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = m.ListRows(TableAccounts)
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = m.ListRows(TableAccounts)
	require.NoError(t, err)
}

func TestMemoryStoreUpdateHook(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.AppendRow(TableAccounts, Row{"Alice", "1234567890", "100", ""}))

	boom := errors.New("disk full")
	m.SetUpdateCellHook(func(table string, rowIdx, colIdx int) error {
		if rowIdx == 1 {
			return boom
		}
		return nil
	})

	err := m.UpdateCell(TableAccounts, 1, 2, "0")
	require.ErrorIs(t, err, boom)

	rows, err := m.ListRows(TableAccounts)
	require.NoError(t, err)
	assert.Equal(t, "100", rows[1][2], "failed update must not change the cell")
}
