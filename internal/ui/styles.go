package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ndquang/thirteen/internal/game/card"
)

// Lipgloss styles shared by every view.
var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	turnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	chatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))

	redCard      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackCard    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	selectedCard = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("28")).Bold(true)
	cursorCard   = lipgloss.NewStyle().Underline(true)
)

func cardStyle(c card.Card) lipgloss.Style {
	if c.Suit == card.Heart || c.Suit == card.Diamond {
		return redCard
	}
	return blackCard
}
