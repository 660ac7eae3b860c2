package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/ui/prompts"
)

func NewCloseCmd(led *ledger.Ledger) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "close ACCOUNT",
		Short: "Close an empty account",
		Long:  "Close an account. The balance must be zero; the transaction history is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				confirmed, err := prompts.ConfirmClose(args[0])
				if err != nil {
					return err
				}
				if !confirmed {
					pterm.Warning.Println("Aborted")
					return nil
				}
			}

			if err := led.CloseAccount(args[0]); err != nil {
				return err
			}

			pterm.Success.Printf("Account %s closed\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
