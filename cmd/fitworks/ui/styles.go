// Package ui provides the visual styling and shared widgets for the
// fitworks interactive client. Colors follow the FitForWorks brand palette:
// amber primary on a zinc neutral scale, indigo for the wizard accents.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Brand palette
	Amber      = lipgloss.Color("#f59e0b") // amber-500, primary actions
	AmberDark  = lipgloss.Color("#d97706") // amber-600
	Indigo     = lipgloss.Color("#6366f1") // indigo-500, wizard accent
	ZincDark   = lipgloss.Color("#18181b") // zinc-900
	ZincBody   = lipgloss.Color("#52525b") // zinc-600, body text
	ZincSubtle = lipgloss.Color("#a1a1aa") // zinc-400, hints
	ZincBorder = lipgloss.Color("#3f3f46") // zinc-700

	// Semantic colors
	Success = lipgloss.Color("#22c55e") // green-500
	Warning = lipgloss.Color("#eab308") // yellow-500
	Danger  = lipgloss.Color("#ef4444") // red-500
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Amber)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ZincDark).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ZincBorder)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ZincBody)

	HintStyle = lipgloss.NewStyle().
			Foreground(ZincSubtle)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ZincBorder).
			Padding(1, 2)

	NoticeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Danger).
			Foreground(Danger).
			Padding(0, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ZincBody)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ZincDark).
			Background(lipgloss.Color("#fef3c7")). // amber-100
			Padding(0, 1)

	MissingChipStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(Danger).
				Padding(0, 1)
)

// ScoreColor picks the gauge color for a 0-100 score.
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return Success
	case score >= 60:
		return Warning
	default:
		return Danger
	}
}
