package config

import "github.com/teller-cli/teller/internal/constants"

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Admin      AdminConfig    `mapstructure:"admin"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LedgerConfig struct {
	FeeRate     string `mapstructure:"fee_rate"`
	MinFee      string `mapstructure:"min_fee"`
	MinTransfer string `mapstructure:"min_transfer"`
}

type AdminConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Ledger: LedgerConfig{
			FeeRate:     constants.DefaultFeeRate,
			MinFee:      constants.DefaultMinFee,
			MinTransfer: constants.DefaultMinTransfer,
		},
		Admin: AdminConfig{Enabled: false},
	}
}
