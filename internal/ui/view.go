package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/tichu/internal/game/card"
	"github.com/palemoky/tichu/internal/game/round"
)

const helpText = `play <id> [<id> ...]   play cards by id (no ids: play the staged cards)
pass                   pass (not allowed when you lead)
stage <id> <pos>       move a card into the staging area
unstage <pos> <hpos>   move a staged card back into the hand
hand | score | leaderboard | history
/counter  toggle the card counter    /help  toggle this help    /quit`

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle("🀄 Tichu"))
	if m.state.Seat >= 0 {
		fmt.Fprintf(&sb, "  %s · seat %d · team %d", m.state.Name, m.state.Seat, round.Team(m.state.Seat)+1)
	}
	sb.WriteString("\n\n")

	switch m.phase {
	case PhaseConnecting:
		sb.WriteString("Connecting...\n")
		return docStyle.Render(sb.String())
	case PhaseDisconnected:
		sb.WriteString(errorStyle.Render("Disconnected: "+m.err) + "\n")
		sb.WriteString(dimStyle.Render("press esc to exit"))
		return docStyle.Render(sb.String())
	}

	sb.WriteString(m.renderPlayers())
	sb.WriteString("\n")
	sb.WriteString(m.renderScore())
	sb.WriteString("\n\n")

	if !m.state.Started {
		sb.WriteString(dimStyle.Render("Waiting for four players...") + "\n")
	} else {
		sb.WriteString(boxStyle.Render(m.renderTable()))
		sb.WriteString("\n")
		sb.WriteString(m.renderHand())
	}

	if m.showCounter {
		sb.WriteString("\n" + m.renderCounter())
	}
	if len(m.state.Leaderboard) > 0 {
		sb.WriteString("\nLeaderboard: " + strings.Join(m.state.Leaderboard, "  "))
	}
	if len(m.state.History) > 0 {
		sb.WriteString("\nRounds: " + strings.Join(m.state.History, "  "))
	}
	if len(m.state.Events) > 0 {
		sb.WriteString("\n" + dimStyle.Render(strings.Join(m.state.Events, "\n")))
	}
	if m.showHelp {
		sb.WriteString("\n" + boxStyle.Render(helpText))
	}

	sb.WriteString(promptStyle.Render(m.renderPrompt()))
	return docStyle.Render(sb.String())
}

func (m *Model) renderPlayers() string {
	parts := make([]string, round.Players)
	for seat := range round.Players {
		name := m.state.PlayerName(seat)
		if seat == m.state.Seat {
			name += " (you)"
		}
		label := fmt.Sprintf("[%d] %s", seat, name)
		if m.state.IsFinished(seat) {
			label = FinishedIcon + " " + label
		}
		parts[seat] = label
	}
	return strings.Join(parts, "   ")
}

func (m *Model) renderScore() string {
	s := fmt.Sprintf("Score  team 1: %d  team 2: %d", m.state.Totals[0], m.state.Totals[1])
	if last := m.state.LastRound; last != (round.Score{}) {
		s += dimStyle.Render(fmt.Sprintf("  (last round %d:%d)", last[0], last[1]))
	}
	if m.state.Winner != 0 {
		s += fmt.Sprintf("  %s team %d won the last game", WinnerIcon, m.state.Winner)
	}
	return s
}

func (m *Model) renderTable() string {
	if len(m.state.Table) == 0 {
		return "Table is empty"
	}
	return m.state.PlayerName(m.state.TableSeat) + ": " + renderCards(m.state.Table)
}

func (m *Model) renderHand() string {
	var sb strings.Builder
	sb.WriteString("Hand:   ")
	sb.WriteString(renderEntries(m.state.Hand))
	if len(m.state.Staged) > 0 {
		sb.WriteString("\nStaged: ")
		sb.WriteString(renderEntries(m.state.Staged))
		if m.state.Shape != "" {
			sb.WriteString(" → " + m.state.Shape)
		}
	}
	return sb.String()
}

func (m *Model) renderCounter() string {
	header := make([]string, len(displayOrder))
	counts := make([]string, len(displayOrder))
	for i, k := range displayOrder {
		label, ok := specialLabels[k]
		if !ok {
			label = k.String()
		}
		n := strconv.Itoa(m.state.CardCounter.Remaining(k))
		w := max(len(label), len(n))
		header[i] = fmt.Sprintf("%*s", w, label)
		counts[i] = fmt.Sprintf("%*s", w, n)
	}
	return boxStyle.Render(strings.Join(header, " ") + "\n" + strings.Join(counts, " "))
}

func (m *Model) renderPrompt() string {
	var sb strings.Builder
	if m.state.MyTurn {
		sb.WriteString(turnStyle.Render(TurnIcon+" Your turn") + "\n")
	}
	if msg := m.errorText(); msg != "" {
		sb.WriteString(errorStyle.Render(msg) + "\n")
	}
	sb.WriteString(m.input.View())
	return sb.String()
}

func (m *Model) errorText() string {
	if m.err != "" {
		return m.err
	}
	return m.state.Error
}

func renderCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = cardStyle(c).Render(c.String())
	}
	return strings.Join(parts, " ")
}

func renderEntries(entries []card.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = dimStyle.Render(strconv.Itoa(e.ID)+":") + cardStyle(e.Card).Render(e.Card.String())
	}
	return strings.Join(parts, " ")
}
