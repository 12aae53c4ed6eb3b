package commands

import (
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// boxWidth is the terminal width from $COLUMNS, at most 80
func boxWidth() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 20 && cols < 80 {
		return cols
	}
	return 80
}

var styleErrBox = lipgloss.NewStyle().
	MarginTop(1).
	Bold(true).
	Background(lipgloss.AdaptiveColor{Light: "#ffe0e0", Dark: "#4a1d1d"}).
	Foreground(lipgloss.AdaptiveColor{Light: "#9a1313", Dark: "#ff9e9e"}).
	Border(lipgloss.ThickBorder(), false, false, false, true).
	BorderLeftForeground(lipgloss.Color("#e84545")).
	Padding(1, 2)

var styleHelpBox = lipgloss.NewStyle().
	Background(lipgloss.AdaptiveColor{Light: "#ececec", Dark: "#2a2a2a"}).
	Padding(1, 2, 0).
	Margin(0, 1)

// ErrorBox renders errorString and the optional helpText in boxes
func ErrorBox(errorString string, helpText string) string {
	width := boxWidth()
	text := lipgloss.NewStyle().Width(width - 18).Render("Error: " + errorString)
	rendered := styleErrBox.Copy().Width(width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, Emoji("❗ "), text),
	)
	if helpText != "" {
		help := styleHelpBox.Copy().Width(width).Render(Emoji("❔ ") + helpText + "\n")
		rendered = lipgloss.JoinVertical(lipgloss.Left, rendered, help)
	}
	return rendered
}
