package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/ui/views"
)

func NewAccountsCmd(led *ledger.Ledger, adminEnabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List all accounts (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !adminEnabled {
				return errors.New("listing all accounts requires admin.enabled in the config")
			}

			accounts, err := led.ListAccounts()
			if err != nil {
				return err
			}

			return views.NewAccountListView().Render(accounts)
		},
	}
}
