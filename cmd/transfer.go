package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
)

func NewTransferCmd(led *ledger.Ledger) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer FROM TO AMOUNT",
		Short: "Transfer money between accounts",
		Long:  "Transfer money between two accounts. The sender pays a fee on top of the amount.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.ParseAmount(args[2])
			if err != nil {
				return err
			}

			receipt, err := led.Transfer(args[0], args[1], amount)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Transferred %s from %s to %s\n",
				money.Format(receipt.Amount), receipt.From.Number, receipt.To.Number)
			pterm.Info.Printf("Fee: %s, total debited: %s, remaining balance: %s\n",
				money.Format(receipt.Fee), money.Format(receipt.TotalDebit), money.Format(receipt.From.Balance))
			return nil
		},
	}
}
