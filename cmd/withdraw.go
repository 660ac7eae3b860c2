package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
)

func NewWithdrawCmd(led *ledger.Ledger) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw ACCOUNT AMOUNT",
		Short: "Withdraw money from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.ParseAmount(args[1])
			if err != nil {
				return err
			}

			acc, err := led.Withdraw(args[0], amount)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Withdrew %s. New balance: %s\n", money.Format(amount), money.Format(acc.Balance))
			return nil
		},
	}
}
