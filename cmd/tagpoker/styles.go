package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/tagpoker/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)
)

// configureColor picks the colour profile for w, falling back to plain
// ASCII when colour is disabled.
func configureColor(w io.Writer, noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
}

func renderCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		label := poker.RankString(c.Rank()) + poker.SuitSymbol(c.Suit())
		switch c.Suit() {
		case poker.Hearts, poker.Diamonds:
			parts[i] = redCardStyle.Render(label)
		default:
			parts[i] = blackCardStyle.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func renderTier(tier string) string {
	switch tier {
	case "non-scary":
		return successStyle.Render(tier)
	case "scary":
		return warningStyle.Render(tier)
	default:
		return errorStyle.Render(tier)
	}
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}
