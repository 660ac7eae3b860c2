package views

import (
	"github.com/pterm/pterm"

	"github.com/teller-cli/teller/internal/constants"
	"github.com/teller-cli/teller/internal/ledger"
	"github.com/teller-cli/teller/internal/money"
)

type HistoryView struct{}

func NewHistoryView() *HistoryView {
	return &HistoryView{}
}

func (v *HistoryView) Render(number string, entries []*ledger.Entry) error {
	headers := []string{"Date & Time", "Type", "Amount", "Balance After"}
	tableData := pterm.TableData{headers}

	for _, e := range entries {
		amount := money.Format(e.Amount)
		switch e.Type {
		case ledger.EntryDeposit, ledger.EntryTransferIn, ledger.EntryCreated:
			amount = pterm.Green("+" + amount)
		case ledger.EntryWithdrawal, ledger.EntryTransferOut:
			amount = pterm.Red("-" + amount)
		}

		tableData = append(tableData, []string{
			e.Timestamp.Format(constants.DateTimeFormat),
			string(e.Type),
			amount,
			money.Format(e.BalanceAfter),
		})
	}

	pterm.DefaultSection.Printf("History for account %s", number)
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Showing %d transactions\n", len(entries))
	return nil
}
