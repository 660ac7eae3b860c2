// Package rowstore defines the tabular persistence contract the ledger is
// built on: ordered rows of free-text cells, with the first row of every
// table acting as the header. Each call is individually atomic; there is no
// transaction spanning calls, which is why the ledger layers its own
// concurrency control on top.
package rowstore

const (
	TableAccounts     = "accounts"
	TableTransactions = "transactions"
)

// Row is one sheet row. Cell meaning is positional and defined by the
// table's header row, not by this package.
type Row []string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

type RowStore interface {
	// ListRows returns every row of the table in insertion order, header
	// first. Row and cell indices used elsewhere are zero-based positions
	// into this sequence.
	ListRows(table string) ([]Row, error)

	// AppendRow adds a row after the current last row of the table.
	AppendRow(table string, row Row) error

	// UpdateCell overwrites a single cell in place.
	UpdateCell(table string, rowIdx, colIdx int, value string) error

	Close() error
}
