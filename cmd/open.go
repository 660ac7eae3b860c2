package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
	"github.com/teller-cli/teller/internal/ui/prompts"
)

func NewOpenCmd(led *ledger.Ledger) *cobra.Command {
	var (
		name       string
		balanceRaw string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		Long:  "Open a new account with a generated 10-digit account number. Runs interactively when --name is not given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			holder := name
			balance, err := money.ParseInitialBalance(balanceRaw)
			if err != nil {
				return err
			}

			if holder == "" {
				holder, balance, err = prompts.PromptOpenAccount()
				if err != nil {
					return err
				}
			}

			acc, err := led.CreateAccount(holder, balance)
			if err != nil {
				return err
			}

			pterm.Success.Printf("Account created. Number: %s\n", acc.Number)
			pterm.Info.Printf("Opening balance: %s\n", money.Format(acc.Balance))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "account holder name")
	cmd.Flags().StringVarP(&balanceRaw, "balance", "b", "", "opening balance (default 0)")

	return cmd
}
