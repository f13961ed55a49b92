package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles, neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	brandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#34d474")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Surface colors
	borderColor      = lipgloss.Color("#2a2a3a")
	tableBorderStyle = lipgloss.NormalBorder()

	// Stat cards on the dashboard
	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 2).
			Width(18)

	statValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	// Detail card (scan result)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Bold(true)

	// Badge colors by status class
	badgeColors = map[string]lipgloss.Color{
		"info":      lipgloss.Color("#60a0e0"),
		"warning":   lipgloss.Color("#f0944a"),
		"success":   lipgloss.Color("#34d474"),
		"danger":    lipgloss.Color("#e06060"),
		"secondary": lipgloss.Color("#8890a0"),
	}
)

// BadgeStyle returns the style for a status badge class as returned by
// domain.StatusClass.
func BadgeStyle(class string) lipgloss.Style {
	if c, ok := badgeColors[class]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(badgeColors["secondary"]).Bold(true)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
