package rowstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	sqlite "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists sheet rows in a single sqlite table
// (tbl, idx, cells), cells being a JSON array of strings. Appends and cell
// updates are single statements, so every RowStore call is individually
// atomic while no transaction ever spans two calls.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string, migrationsFS fs.FS) (*SQLiteStore, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("can not open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("can not connect with database: %w", err)
	}
	if err := runMigrations(db, migrationsFS); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func runMigrations(db *sql.DB, migrationsFS fs.FS) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up): %w", err)
	}

	return nil
}

func (s *SQLiteStore) ListRows(table string) ([]Row, error) {
	rows, err := s.db.Query(`
		SELECT cells
		FROM sheet_rows
		WHERE tbl = ?
		ORDER BY idx
	`, table)
	if err != nil {
		return nil, wrapSQLiteErr("failed to query rows", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Row
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var row Row
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, fmt.Errorf("corrupt row in table %q: %w", table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapSQLiteErr("failed to iterate rows", err)
	}

	// A table exists iff its header row was seeded.
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	return out, nil
}

func (s *SQLiteStore) AppendRow(table string, row Row) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	// Next index is computed inside the INSERT so the append stays a
	// single atomic statement. HAVING filters out tables that were never
	// seeded with a header.
	res, err := s.db.Exec(`
		INSERT INTO sheet_rows (tbl, idx, cells)
		SELECT ?, COALESCE(MAX(idx), -1) + 1, ?
		FROM sheet_rows
		WHERE tbl = ?
		HAVING COUNT(*) > 0
	`, table, string(cells), table)
	if err != nil {
		return wrapSQLiteErr("failed to append row", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	return nil
}

func (s *SQLiteStore) UpdateCell(table string, rowIdx, colIdx int, value string) error {
	if rowIdx < 0 || colIdx < 0 {
		return fmt.Errorf("%w: row %d col %d", ErrCellOutOfRange, rowIdx, colIdx)
	}

	var width int
	err := s.db.QueryRow(`
		SELECT json_array_length(cells)
		FROM sheet_rows
		WHERE tbl = ? AND idx = ?
	`, table, rowIdx).Scan(&width)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: table %q row %d", ErrRowOutOfRange, table, rowIdx)
		}
		return wrapSQLiteErr("failed to read row", err)
	}
	if colIdx >= width {
		return fmt.Errorf("%w: table %q row %d col %d", ErrCellOutOfRange, table, rowIdx, colIdx)
	}

	// json_set keeps the write a single atomic statement.
	_, err = s.db.Exec(`
		UPDATE sheet_rows
		SET cells = json_set(cells, '$[' || ? || ']', ?)
		WHERE tbl = ? AND idx = ?
	`, colIdx, value, table, rowIdx)
	if err != nil {
		return wrapSQLiteErr("failed to update cell", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// wrapSQLiteErr maps lock contention onto ErrUnavailable so callers can
// tell retryable failures from permanent ones.
func wrapSQLiteErr(msg string, err error) error {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		if errors.Is(sqliteErr.Code, sqlite.ErrBusy) || errors.Is(sqliteErr.Code, sqlite.ErrLocked) {
			return fmt.Errorf("%s: %v: %w", msg, err, ErrUnavailable)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
