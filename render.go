package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	boardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func renderTableList(views []domain.PublicView) string {
	if len(views) == 0 {
		return emptyStyle.Render("no tables")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-36s  %-16s  %-8s  %-7s  %s", "ID", "NAME", "STATUS", "BLINDS", "PLAYERS")))
	for _, v := range views {
		seated := 0
		for _, s := range v.Seats {
			if s.Player != "" {
				seated++
			}
		}
		fmt.Fprintf(&b, "\n%-36s  %-16s  %-8s  %-7s  %d/%d",
			v.ID, v.Name, v.Status, fmt.Sprintf("%d/%d", v.SmallBlind, v.BigBlind), seated, len(v.Seats))
	}
	return b.String()
}

func renderTable(v domain.PublicView) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  (%s)", v.Name, v.ID)))
	fmt.Fprintf(&b, "\nstatus %s  hand #%d  stage %s  blinds %d/%d  buy-in %d",
		v.Status, v.HandNumber, v.Stage, v.SmallBlind, v.BigBlind, v.BuyIn)

	board := append(append(v.Flop.Clone(), v.Turn...), v.River...)
	fmt.Fprintf(&b, "\nboard %s  pot %d", boardStyle.Render(renderCards(board)), v.Pot)

	for _, s := range v.Seats {
		b.WriteString("\n")
		if s.Player == "" {
			b.WriteString(emptyStyle.Render(fmt.Sprintf("%2d  (empty)", s.Seat)))
			continue
		}

		marker := " "
		if s.Dealer {
			marker = "D"
		}
		line := fmt.Sprintf("%2d %s %-16s chips %6d  bet %5d", s.Seat, marker, s.Player, s.Chips, s.Bet)
		if s.Last != domain.ActionNone {
			line += "  " + string(s.Last)
		}
		if !s.InHand && v.Status == domain.TableStatusStarted {
			line += "  (out)"
		}
		if s.Active {
			line = activeStyle.Render(line)
		}
		b.WriteString(line)
	}
	return boxStyle.Render(b.String())
}

func renderCards(stack cards.Stack) string {
	if len(stack) == 0 {
		return "-"
	}
	parts := make([]string, len(stack))
	for i, c := range stack {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
