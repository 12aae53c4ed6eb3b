package commands

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CliError is an error that is displayed to the user with help and suggestions
type CliError struct {
	Text        string
	Help        string
	Suggestions []string
	// Err is the optional cause
	Err error
}

func (e *CliError) Error() string {
	if e.Err != nil {
		return e.Text + ": " + e.Err.Error()
	}
	return e.Text
}

func (e *CliError) Unwrap() error {
	return e.Err
}

// RichError renders the error box followed by the suggestions
func (e *CliError) RichError() string {
	rendered := ErrorBox(e.Error(), e.Help)
	if len(e.Suggestions) == 0 {
		return rendered
	}

	var b strings.Builder
	b.WriteString(Emoji("📎 "))
	if len(e.Suggestions) > 1 {
		b.WriteString("Suggestions:\n")
	} else {
		b.WriteString("Suggestion:\n")
	}
	for _, s := range e.Suggestions {
		b.WriteString(" ⦁ " + s + "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered, styleHelpBox.Copy().Width(boxWidth()).Render(b.String()))
}
