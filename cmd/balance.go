package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
)

func NewBalanceCmd(led *ledger.Ledger) *cobra.Command {
	return &cobra.Command{
		Use:   "balance ACCOUNT",
		Short: "Show an account's current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := led.GetAccount(args[0])
			if err != nil {
				return err
			}

			pterm.Info.Printf("%s (%s): %s\n", acc.Name, acc.Number, money.Format(acc.Balance))
			return nil
		},
	}
}
