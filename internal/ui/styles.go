package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/tichu/internal/game/card"
)

// Icon constants
const (
	TurnIcon     = "👉"
	FinishedIcon = "🏁"
	WinnerIcon   = "🏆"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	cardBase    = lipgloss.NewStyle().Background(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	turnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	colorStyles = map[card.Color]lipgloss.Style{
		card.Black: cardBase.Foreground(lipgloss.Color("0")),
		card.Blue:  cardBase.Foreground(lipgloss.Color("#1E50C8")),
		card.Green: cardBase.Foreground(lipgloss.Color("#1E8B3A")),
		card.Red:   cardBase.Foreground(lipgloss.Color("#CD0000")),
	}
	specialStyle = cardBase.Foreground(lipgloss.Color("#B8860B"))

	// 记牌器显示顺序
	displayOrder = []card.Kind{
		card.Dragon, card.Phoenix, card.King, card.Queen, card.Jack, card.Ten, card.Nine,
		card.Eight, card.Seven, card.Six, card.Five, card.Four, card.Three, card.Two, card.One, card.Dog,
	}
	specialLabels = map[card.Kind]string{
		card.Dragon:  "Dr",
		card.Phoenix: "Ph",
		card.One:     "1",
		card.Dog:     "Dg",
	}
)

func cardStyle(c card.Card) lipgloss.Style {
	if s, ok := colorStyles[c.Color]; ok {
		return s
	}
	return specialStyle
}
