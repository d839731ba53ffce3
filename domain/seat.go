package domain

import "github.com/lazharichir/holdem/cards"

// NoPosition marks a seat that was not dealt into the current hand.
const NoPosition = -1

// Action is something a seat did during the current betting round.
type Action string

const (
	ActionNone  Action = ""
	ActionCheck Action = "check"
	ActionBet   Action = "bet"
	ActionFold  Action = "fold"
)

// Seat is one fixed slot at a table.
type Seat struct {
	Player   PlayerID    `json:"player,omitempty"`
	Chips    int         `json:"chips"`
	Bet      int         `json:"bet"`
	Hand     cards.Stack `json:"hand,omitempty"`
	Solved   []string    `json:"solved,omitempty"`
	Active   bool        `json:"active"`
	InHand   bool        `json:"inHand"`
	Last     Action      `json:"last,omitempty"`
	Dealer   bool        `json:"dealer"`
	Position int         `json:"position"`
}

func NewSeat() Seat {
	return Seat{Position: NoPosition}
}

func (s *Seat) Occupied() bool {
	return !s.Player.IsZero()
}

// AllIn reports a seat still contesting the pot with nothing left to bet.
func (s *Seat) AllIn() bool {
	return s.InHand && s.Chips == 0
}

// resetForHand clears everything but occupancy and the stack.
func (s *Seat) resetForHand() {
	s.Bet = 0
	s.Hand = nil
	s.Solved = nil
	s.Active = false
	s.InHand = false
	s.Last = ActionNone
	s.Dealer = false
	s.Position = NoPosition
}

func (s *Seat) vacate() {
	s.resetForHand()
	s.Player = ""
	s.Chips = 0
}
