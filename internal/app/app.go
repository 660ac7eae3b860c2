package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/teller-cli/teller/internal/config"
	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/rowstore"
)

type App struct {
	Ledger *ledger.Ledger
	Store  rowstore.RowStore
	Log    zerolog.Logger
}

// NewApp opens the row store, builds the ledger on top of it and returns
// the wired application plus its cleanup func.
func NewApp(cfg *config.Config, migrationsFS fs.FS, log zerolog.Logger) (*App, func(), error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		appDir, err := AppDataDir()
		if err != nil {
			return nil, nil, err
		}
		dbPath = filepath.Join(appDir, "teller.db")
	}

	store, err := rowstore.NewSQLiteStore(dbPath, migrationsFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	policy, err := ledger.NewPolicy(cfg.Ledger.FeeRate, cfg.Ledger.MinFee, cfg.Ledger.MinTransfer)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("bad ledger config: %w", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing database")
		}
	}

	return &App{
		Ledger: ledger.New(store, policy, log),
		Store:  store,
		Log:    log,
	}, cleanup, nil
}

// AppDataDir returns the per-user directory holding the config file and the
// default database.
func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".teller"), nil
	}

	return filepath.Join(configDir, "teller"), nil
}
