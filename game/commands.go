package game

import (
	"strings"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
)

// Command is a transport-neutral table command. Name is one of the
// commands package names; Seat and Amount are ignored where they do not apply.
type Command struct {
	Name    string `json:"name"`
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
	Amount  int    `json:"amount"`
}

// Request pairs a command with the identity of the caller.
type Request struct {
	Player  domain.PlayerID
	Command Command
}

// Response is returned for every command, successful or not.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Table   *domain.PublicView  `json:"table,omitempty"`
	Player  *domain.PrivateView `json:"player,omitempty"`
}

// normalizeName maps "bet", "Bet" and "BET" to the registered command name.
func normalizeName(name string) (string, bool) {
	cmd, ok := commands.Lookup(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return "", false
	}
	return cmd.Name(), true
}
