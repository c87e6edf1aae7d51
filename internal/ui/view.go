package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ndquang/thirteen/internal/game/engine"
)

func (m *Model) View() string {
	var body string
	switch m.mode {
	case modeMenu:
		body = m.menuView()
	case modeBrowse:
		body = m.browseView()
	case modeGame:
		body = m.gameView()
	}
	return docStyle.Render(body)
}

func (m *Model) menuView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("♠ Thirteen"))
	sb.WriteString("\n\n")

	switch m.stage {
	case stageName:
		sb.WriteString("What's your name?\n\n")
		sb.WriteString(m.nameInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(faintStyle.Render("enter to continue"))

	case stageChoose:
		items := []string{"Play solo", "Host a lobby", "Join with a code", "Browse public lobbies"}
		for i, item := range items {
			cursor := "  "
			if i == m.choice {
				cursor = "> "
			}
			sb.WriteString(cursor + item + "\n")
		}
		sb.WriteString("\n")
		sb.WriteString(faintStyle.Render("↑/↓ move · enter select · q quit"))

	case stageJoinCode:
		sb.WriteString("Lobby code:\n\n")
		sb.WriteString(m.codeInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(faintStyle.Render("enter to join · esc to go back"))
	}

	if m.errLine != "" {
		sb.WriteString("\n\n" + errorStyle.Render(m.errLine))
	}
	return sb.String()
}

func (m *Model) browseView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("Public lobbies"))
	sb.WriteString("\n\n")

	if len(m.lobbies) == 0 {
		sb.WriteString(faintStyle.Render("No open lobbies. Press r to refresh."))
	}
	for i, lobby := range m.lobbies {
		cursor := "  "
		if i == m.choice {
			cursor = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%s - %s (%d/%d)\n", cursor, lobby.Name, lobby.Host, lobby.Current, lobby.Max))
	}
	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render("enter join · r refresh · esc back"))
	if m.errLine != "" {
		sb.WriteString("\n\n" + errorStyle.Render(m.errLine))
	}
	return sb.String()
}

func (m *Model) gameView() string {
	if m.state == nil {
		wait := "Waiting for the deal..."
		if m.statusLine != "" {
			wait += "\n" + statusStyle.Render(m.statusLine)
		}
		return wait
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(m.seatsView())
	sb.WriteString("\n")
	sb.WriteString(boxStyle.Render(renderCombination(m.state.CurrentPlay)))
	sb.WriteString("\n\n")
	sb.WriteString(m.handView())

	switch m.state.Phase {
	case engine.RoundEnd:
		sb.WriteString("\n\n" + m.roundEndView())
	case engine.GameOver:
		sb.WriteString("\n\n" + m.gameOverView())
	}

	if len(m.chatLog) > 0 {
		sb.WriteString("\n\n" + chatStyle.Render(strings.Join(m.chatLog, "\n")))
	}
	if m.chatting {
		sb.WriteString("\n" + m.chatInput.View())
	}
	if m.statusLine != "" {
		sb.WriteString("\n" + statusStyle.Render(m.statusLine))
	}
	if m.errLine != "" {
		sb.WriteString("\n" + errorStyle.Render(m.errLine))
	}

	sb.WriteString("\n\n" + m.helpView())
	return sb.String()
}

func (m *Model) headerView() string {
	s := m.state
	header := fmt.Sprintf("Round %d", s.RoundNumber)
	if m.lobbyID != "" {
		header += " · Lobby " + m.lobbyID
	}
	return titleStyle(header) + "\n"
}

// seatsView lists all four seats with score, card count, and whose
// turn it is.
func (m *Model) seatsView() string {
	s := m.state
	var rows []string
	for i := range s.Players {
		p := &s.Players[i]

		marker := "  "
		if s.Phase == engine.Playing && s.CurrentPlayer == i {
			marker = turnStyle.Render("▶ ")
		}
		name := p.Name
		if i == m.mySeat {
			name += " (you)"
		}

		var detail string
		switch {
		case p.Eliminated:
			detail = faintStyle.Render("eliminated")
		case p.HasPassed:
			detail = faintStyle.Render(fmt.Sprintf("%d cards · passed", len(p.Hand)))
		default:
			detail = fmt.Sprintf("%d cards", len(p.Hand))
		}

		row := fmt.Sprintf("%s%-18s %2d pts  %s", marker, name, p.Score, detail)
		if p.LastPlay != nil && s.LastPlayedBy == i && s.Phase == engine.Playing {
			row += "  " + faintStyle.Render(renderCards(p.LastPlay.Cards))
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m *Model) handView() string {
	hand := m.myHand()
	if m.state.Players[m.mySeat].Eliminated {
		return faintStyle.Render("You are out of the tournament. Spectating.")
	}
	if m.state.Phase != engine.Playing {
		return ""
	}
	return "Your hand:\n" + renderHand(hand, m.selected, m.cursor)
}

func (m *Model) roundEndView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("Round over"))
	sb.WriteString("\n")
	// The last ROUND_END entry carries the authoritative score deltas.
	for i := len(m.state.History) - 1; i >= 0; i-- {
		mv := m.state.History[i]
		if mv.Kind != engine.MoveRoundEnd {
			continue
		}
		winner := m.state.Players[mv.Winner].Name
		sb.WriteString(fmt.Sprintf("%s went out first. Next round shortly...", winner))
		break
	}
	return sb.String()
}

func (m *Model) gameOverView() string {
	var sb strings.Builder
	winner := m.state.Winner()
	if winner == nil {
		return titleStyle("Game over")
	}
	if winner.Seat == m.mySeat {
		sb.WriteString(titleStyle("🏆 You win the tournament!"))
	} else {
		sb.WriteString(titleStyle(winner.Name + " wins the tournament"))
	}

	if len(m.leaderboard) > 0 {
		sb.WriteString("\n\nAll-time wins:\n")
		for _, e := range m.leaderboard {
			sb.WriteString(fmt.Sprintf("  %-18s %d\n", e.Name, e.Wins))
		}
	}
	sb.WriteString("\n" + faintStyle.Render("q to leave"))
	return sb.String()
}

func (m *Model) helpView() string {
	help := "←/→ move · space select · enter play · p pass · q leave"
	if m.online {
		help += " · / chat"
	}
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(min(m.width-4, lipgloss.Width(help)+2), lipgloss.Left, faintStyle.Render(help))
	}
	return faintStyle.Render(help)
}
