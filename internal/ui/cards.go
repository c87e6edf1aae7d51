package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ndquang/thirteen/internal/game/card"
	"github.com/ndquang/thirteen/internal/game/combo"
)

// renderHand draws the local hand as a row of card faces. selected
// cards get the green highlight; the cursor card is underlined.
func renderHand(hand []card.Card, selected map[card.Card]bool, cursor int) string {
	if len(hand) == 0 {
		return faintStyle.Render("(no cards)")
	}

	faces := make([]string, len(hand))
	for i, c := range hand {
		style := cardStyle(c)
		if selected[c] {
			style = selectedCard
		}
		face := style.Render(" " + c.String() + " ")
		if i == cursor {
			face = cursorCard.Render(face)
		}
		faces[i] = face
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(faces)...)
}

// renderCombination draws a played combination with its type label.
func renderCombination(c *combo.Combination) string {
	if c == nil {
		return faintStyle.Render("table clear, play anything")
	}

	faces := make([]string, len(c.Cards))
	for i, cd := range c.Cards {
		faces[i] = cardStyle(cd).Render(" " + cd.String() + " ")
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(faces)...)
	return row + "  " + faintStyle.Render(c.Type.String())
}

func renderCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func joinWithGap(faces []string) []string {
	gapped := make([]string, 0, len(faces)*2)
	for i, f := range faces {
		if i > 0 {
			gapped = append(gapped, " ")
		}
		gapped = append(gapped, f)
	}
	return gapped
}
