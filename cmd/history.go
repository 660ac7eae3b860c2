package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/constants"
	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/ui/views"
)

func NewHistoryCmd(led *ledger.Ledger) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history ACCOUNT",
		Short: "Show an account's transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := led.GetHistory(args[0], limit)
			if err != nil {
				return err
			}

			return views.NewHistoryView().Render(args[0], entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", constants.DefaultHistoryLimit, "number of most recent transactions to show (0 for all)")

	return cmd
}
