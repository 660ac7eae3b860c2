package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teller-cli/teller/internal/app"
	"github.com/teller-cli/teller/internal/config"
	"github.com/teller-cli/teller/internal/errhandler"
	"github.com/teller-cli/teller/internal/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// Config and logger must exist before cobra parses anything, so the
	// two flags that shape them are peeked off the raw args.
	cfgFile = peekStringFlag(os.Args[1:], "--config", "-c")
	verbose = peekBoolFlag(os.Args[1:], "--verbose", "-v")

	if err := initConfig(); err != nil {
		errhandler.Handle(err)
	}

	log := logger.New(verbose)

	application, cleanup, err := app.NewApp(cfg, migrations, log)
	if err != nil {
		errhandler.Handle(err)
	}
	defer cleanup()

	rootCmd := &cobra.Command{
		Use:           "teller",
		Short:         "teller is a small CLI banking ledger",
		Long:          "teller keeps accounts and an append-only transaction journal in a simple row store.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", cfgFile, "set the config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", verbose, "enable debug logging")

	rootCmd.AddCommand(NewOpenCmd(application.Ledger))
	rootCmd.AddCommand(NewDepositCmd(application.Ledger))
	rootCmd.AddCommand(NewWithdrawCmd(application.Ledger))
	rootCmd.AddCommand(NewTransferCmd(application.Ledger))
	rootCmd.AddCommand(NewBalanceCmd(application.Ledger))
	rootCmd.AddCommand(NewHistoryCmd(application.Ledger))
	rootCmd.AddCommand(NewAccountsCmd(application.Ledger, cfg.Admin.Enabled))
	rootCmd.AddCommand(NewCloseCmd(application.Ledger))

	if err := rootCmd.Execute(); err != nil {
		cleanup()
		errhandler.Handle(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("TELLER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	viper.SetDefault("ledger.fee_rate", config.NewDefault().Ledger.FeeRate)
	viper.SetDefault("ledger.min_fee", config.NewDefault().Ledger.MinFee)
	viper.SetDefault("ledger.min_transfer", config.NewDefault().Ledger.MinTransfer)

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func peekStringFlag(args []string, long, short string) string {
	for i, a := range args {
		if (a == long || a == short) && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(a, long+"=") {
			return strings.TrimPrefix(a, long+"=")
		}
	}
	return ""
}

func peekBoolFlag(args []string, long, short string) bool {
	for _, a := range args {
		if a == long || a == short {
			return true
		}
	}
	return false
}
