package cli

import "github.com/charmbracelet/lipgloss"

var (
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)

	filledCell = lipgloss.NewStyle().Background(lipgloss.Color("10")).Render("  ")
	emptyCell  = lipgloss.NewStyle().Background(lipgloss.Color("0")).Render("  ")
)
