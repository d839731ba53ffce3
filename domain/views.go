package domain

import "github.com/lazharichir/holdem/cards"

// PublicView is what every observer of a table sees. It never carries hole
// cards or solved hands.
type PublicView struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Seats      []PublicSeat `json:"seats"`
	Flop       cards.Stack  `json:"flop"`
	Turn       cards.Stack  `json:"turn"`
	River      cards.Stack  `json:"river"`
	Pot        int          `json:"pot"`
	Status     TableStatus  `json:"status"`
	SmallBlind int          `json:"sblind"`
	BigBlind   int          `json:"bblind"`
	BuyIn      int          `json:"buyin"`
	Round      Stage        `json:"round"`
	Stage      string       `json:"stage"`
	HighestBet int          `json:"highestBet"`
	ActiveSeat int          `json:"activeSeat"`
	HandNumber int          `json:"handNumber"`
}

type PublicSeat struct {
	Seat     int      `json:"seat"`
	Player   PlayerID `json:"player,omitempty"`
	Chips    int      `json:"chips"`
	Bet      int      `json:"bet"`
	Dealer   bool     `json:"dealer"`
	Position int      `json:"position"`
	Active   bool     `json:"active"`
	InHand   bool     `json:"inHand"`
	Last     Action   `json:"last,omitempty"`
	HasCards bool     `json:"hasCards"`
}

// PrivateView is sent only to the player sitting at Seat.
type PrivateView struct {
	TableID string      `json:"tableId"`
	Seat    int         `json:"seat"`
	Player  PlayerID    `json:"player"`
	Hand    cards.Stack `json:"hand"`
	Solved  []string    `json:"solved"`
	Active  bool        `json:"active"`
	InHand  bool        `json:"inHand"`
	Chips   int         `json:"chips"`
	Bet     int         `json:"bet"`
	ToCall  int         `json:"toCall"`
	Allowed []Action    `json:"allowed"`
}

// BuildPublicView constructs the table view shared with all observers.
func BuildPublicView(t *Table) PublicView {
	view := PublicView{
		ID:         t.ID,
		Name:       t.Name,
		Seats:      make([]PublicSeat, len(t.Seats)),
		Flop:       t.Flop.Clone(),
		Turn:       t.Turn.Clone(),
		River:      t.River.Clone(),
		Pot:        t.Pot,
		Status:     t.Status,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		BuyIn:      t.BuyIn,
		Round:      t.Round,
		Stage:      t.Round.String(),
		HighestBet: t.HighestBet(),
		ActiveSeat: t.ActiveSeat(),
		HandNumber: t.HandNumber,
	}

	for i, s := range t.Seats {
		view.Seats[i] = PublicSeat{
			Seat:     i,
			Player:   s.Player,
			Chips:    s.Chips,
			Bet:      s.Bet,
			Dealer:   s.Dealer,
			Position: s.Position,
			Active:   s.Active,
			InHand:   s.InHand,
			Last:     s.Last,
			HasCards: len(s.Hand) > 0,
		}
	}
	return view
}

// BuildPrivateView constructs player's own view. ok is false when the player
// has no seat at the table.
func BuildPrivateView(t *Table, player PlayerID) (view PrivateView, ok bool) {
	seat := t.SeatOf(player)
	if seat < 0 {
		return PrivateView{}, false
	}
	s := t.Seats[seat]

	toCall := t.HighestBet() - s.Bet
	if toCall > s.Chips {
		toCall = s.Chips
	}
	if toCall < 0 {
		toCall = 0
	}

	return PrivateView{
		TableID: t.ID,
		Seat:    seat,
		Player:  player,
		Hand:    s.Hand.Clone(),
		Solved:  append([]string(nil), s.Solved...),
		Active:  s.Active,
		InHand:  s.InHand,
		Chips:   s.Chips,
		Bet:     s.Bet,
		ToCall:  toCall,
		Allowed: t.Allowed(seat),
	}, true
}
