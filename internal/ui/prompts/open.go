package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
)

// PromptOpenAccount walks the user through opening an account: holder name
// and an optional opening balance, validated inline.
func PromptOpenAccount() (string, decimal.Decimal, error) {
	var name, balanceRaw string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account holder name").
				Validate(ledger.ValidateName).
				Value(&name),
			huh.NewInput().
				Title("Opening balance").
				Description("Leave empty for 0.00").
				Validate(func(s string) error {
					_, err := money.ParseInitialBalance(s)
					return err
				}).
				Value(&balanceRaw),
		),
	)

	if err := form.Run(); err != nil {
		return "", decimal.Zero, err
	}

	balance, err := money.ParseInitialBalance(balanceRaw)
	if err != nil {
		return "", decimal.Zero, err
	}

	return name, balance, nil
}
