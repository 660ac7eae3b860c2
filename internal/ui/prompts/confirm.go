package prompts

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/teller-cli/teller/internal/ui"
)

// ConfirmClose asks before retiring an account.
func ConfirmClose(number string) (bool, error) {
	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Close account %s? Its history is kept but the account can't be reopened.", number),
	}

	err := survey.AskOne(prompt, &confirmed, ui.IconOption())
	return confirmed, err
}
