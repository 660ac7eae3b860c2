package views

import (
	"github.com/pterm/pterm"

	"github.com/teller-cli/teller/internal/constants"
	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(accounts []*ledger.Account) error {
	headers := []string{"Name", "Account Number", "Balance", "Last Updated"}
	tableData := pterm.TableData{headers}

	for _, acc := range accounts {
		updated := ""
		if !acc.LastUpdated.IsZero() {
			updated = acc.LastUpdated.Format(constants.DateTimeFormat)
		}
		tableData = append(tableData, []string{
			acc.Name,
			acc.Number,
			money.Format(acc.Balance),
			updated,
		})
	}

	pterm.DefaultSection.Println("Accounts")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}
