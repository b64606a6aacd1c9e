package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScoreBar renders a 0-100 score as a horizontal gauge with the score and
// label alongside.
func ScoreBar(score, width int, label string) string {
	if width < 10 {
		width = 10
	}
	filled := score * width / 100
	if filled > width {
		filled = width
	}

	bar := lipgloss.NewStyle().Foreground(ScoreColor(score)).
		Render(strings.Repeat("█", filled)) +
		HintStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s %s %s", bar,
		lipgloss.NewStyle().Bold(true).Foreground(ScoreColor(score)).Render(fmt.Sprintf("%3d", score)),
		HintStyle.Render(label))
}

// SubScoreBar renders a 0-10 dimension score.
func SubScoreBar(label string, value int) string {
	if value > 10 {
		value = 10
	}
	if value < 0 {
		value = 0
	}
	bar := lipgloss.NewStyle().Foreground(ScoreColor(value * 10)).
		Render(strings.Repeat("▰", value)) +
		HintStyle.Render(strings.Repeat("▱", 10-value))
	return fmt.Sprintf("%-20s %s %d/10", label, bar, value)
}

// Chips renders items as inline tags, wrapping at width.
func Chips(items []string, style lipgloss.Style, width int) string {
	if len(items) == 0 {
		return HintStyle.Render("none")
	}
	var rows []string
	var row string
	for _, item := range items {
		chip := style.Render(item)
		if row != "" && lipgloss.Width(row)+lipgloss.Width(chip)+1 > width {
			rows = append(rows, row)
			row = ""
		}
		if row != "" {
			row += " "
		}
		row += chip
	}
	if row != "" {
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// SelectList renders items with a cursor marker on the active one.
func SelectList(items []string, cursor int) string {
	var b strings.Builder
	for i, item := range items {
		if i == cursor {
			b.WriteString(SelectedItemStyle.Render("› " + item))
		} else {
			b.WriteString(ItemStyle.Render("  " + item))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// BulletList renders items as a dash list, or a muted placeholder when
// empty.
func BulletList(items []string) string {
	if len(items) == 0 {
		return HintStyle.Render("  (nothing yet)")
	}
	var b strings.Builder
	for i, item := range items {
		b.WriteString(BodyStyle.Render("  - " + item))
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// KeyHints renders key/description pairs as a one-line footer.
func KeyHints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts,
			SelectedItemStyle.Render(pairs[i])+HintStyle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, HintStyle.Render("  •  "))
}
