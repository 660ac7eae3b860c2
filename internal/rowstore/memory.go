package rowstore

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory RowStore. It backs the test suite and doubles
// as a fault-injection harness: a bounded failure window simulates a flaky
// backend, and an UpdateCell hook lets a test kill one specific write.
type MemoryStore struct {
	mu       sync.Mutex
	tables   map[string][]Row
	failNext int

	updateHook func(table string, rowIdx, colIdx int) error
}

// NewMemoryStore returns a store seeded with the canonical account and
// transaction headers.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: map[string][]Row{
			TableAccounts:     {{"Name", "Account Number", "Balance", "Last Updated"}},
			TableTransactions: {{"Account Number", "Type", "Amount", "Balance After", "Date & Time", "Reference"}},
		},
	}
}

// Seed replaces a table's contents wholesale, header included. Test helper.
func (m *MemoryStore) Seed(table string, rows []Row) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := make([]Row, 0, len(rows))
	for _, r := range rows {
		cloned = append(cloned, r.Clone())
	}
	m.tables[table] = cloned
}

// FailNext makes the next n calls fail with ErrUnavailable.
func (m *MemoryStore) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = n
}

// SetUpdateCellHook installs a hook consulted before every UpdateCell; a
// non-nil return aborts the write with that error.
func (m *MemoryStore) SetUpdateCellHook(hook func(table string, rowIdx, colIdx int) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateHook = hook
}

func (m *MemoryStore) checkAvailable() error {
	if m.failNext > 0 {
		m.failNext--
		return fmt.Errorf("injected outage: %w", ErrUnavailable)
	}
	return nil
}

func (m *MemoryStore) ListRows(table string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkAvailable(); err != nil {
		return nil, err
	}

	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (m *MemoryStore) AppendRow(table string, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkAvailable(); err != nil {
		return err
	}

	rows, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	m.tables[table] = append(rows, row.Clone())
	return nil
}

func (m *MemoryStore) UpdateCell(table string, rowIdx, colIdx int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkAvailable(); err != nil {
		return err
	}
	if m.updateHook != nil {
		if err := m.updateHook(table, rowIdx, colIdx); err != nil {
			return err
		}
	}

	rows, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if rowIdx < 0 || rowIdx >= len(rows) {
		return fmt.Errorf("%w: table %q row %d", ErrRowOutOfRange, table, rowIdx)
	}
	if colIdx < 0 || colIdx >= len(rows[rowIdx]) {
		return fmt.Errorf("%w: table %q row %d col %d", ErrCellOutOfRange, table, rowIdx, colIdx)
	}

	rows[rowIdx][colIdx] = value
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
