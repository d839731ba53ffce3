package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
)

type TableStatus string

const (
	TableStatusOpen    TableStatus = "open"
	TableStatusStarted TableStatus = "started"
)

// Stage is the betting stage of the hand in progress.
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	Showdown
)

func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Next returns the stage that follows s. Showdown wraps back to PreFlop.
func (s Stage) Next() Stage {
	if s >= River {
		return PreFlop
	}
	return s + 1
}

// TableSettings are fixed when a table is created.
type TableSettings struct {
	Name       string `json:"name"`
	Seats      int    `json:"seats"`
	BuyIn      int    `json:"buyin"`
	SmallBlind int    `json:"sblind"`
	BigBlind   int    `json:"bblind"`
}

func (s TableSettings) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTable)
	}
	if s.Seats < 2 || s.Seats > 10 {
		return fmt.Errorf("%w: seats must be between 2 and 10, got %d", ErrInvalidTable, s.Seats)
	}
	if s.SmallBlind <= 0 || s.BigBlind < s.SmallBlind {
		return fmt.Errorf("%w: blinds %d/%d", ErrInvalidTable, s.SmallBlind, s.BigBlind)
	}
	if s.BuyIn < s.BigBlind {
		return fmt.Errorf("%w: buy-in %d is below the big blind", ErrInvalidTable, s.BuyIn)
	}
	return nil
}

// Table is the persisted record every command loads, mutates and saves.
type Table struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Seats      []Seat      `json:"seats"`
	Deck       cards.Deck  `json:"deck"`
	Pot        int         `json:"pot"`
	SmallBlind int         `json:"sblind"`
	BigBlind   int         `json:"bblind"`
	BuyIn      int         `json:"buyin"`
	Status     TableStatus `json:"status"`
	Flop       cards.Stack `json:"flop,omitempty"`
	Turn       cards.Stack `json:"turn,omitempty"`
	River      cards.Stack `json:"river,omitempty"`
	Muck       cards.Stack `json:"muck,omitempty"`
	Round      Stage       `json:"round"`
	Button     int         `json:"button"`
	HandNumber int         `json:"handNumber"`
	Version    int         `json:"version"`
	CreatedAt  time.Time   `json:"createdAt"`

	// events
	Events        []events.Event `json:"-"`
	eventHandlers []events.EventHandler
}

func NewTable(settings TableSettings, createdAt time.Time) (*Table, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	seats := make([]Seat, settings.Seats)
	for i := range seats {
		seats[i] = NewSeat()
	}

	return &Table{
		ID:         uuid.NewString(),
		Name:       settings.Name,
		Seats:      seats,
		Deck:       cards.NewDeck(),
		SmallBlind: settings.SmallBlind,
		BigBlind:   settings.BigBlind,
		BuyIn:      settings.BuyIn,
		Status:     TableStatusOpen,
		Round:      PreFlop,
		Button:     -1,
		CreatedAt:  createdAt,
	}, nil
}

func (t *Table) Settings() TableSettings {
	return TableSettings{
		Name:       t.Name,
		Seats:      len(t.Seats),
		BuyIn:      t.BuyIn,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
	}
}

// Community returns every revealed community card in deal order.
func (t *Table) Community() cards.Stack {
	out := make(cards.Stack, 0, 5)
	out = append(out, t.Flop...)
	out = append(out, t.Turn...)
	out = append(out, t.River...)
	return out
}

// HighestBet is the largest uncollected bet of the current betting round.
func (t *Table) HighestBet() int {
	highest := 0
	for _, s := range t.Seats {
		if s.Bet > highest {
			highest = s.Bet
		}
	}
	return highest
}

// ActiveSeat returns the index of the seat holding the turn, or -1.
func (t *Table) ActiveSeat() int {
	for i := range t.Seats {
		if t.Seats[i].Active {
			return i
		}
	}
	return -1
}

// SeatOf returns the seat index occupied by player, or -1.
func (t *Table) SeatOf(player PlayerID) int {
	if player.IsZero() {
		return -1
	}
	for i := range t.Seats {
		if t.Seats[i].Player == player {
			return i
		}
	}
	return -1
}

// TotalChips sums stacks, live bets and the pot.
func (t *Table) TotalChips() int {
	total := t.Pot
	for _, s := range t.Seats {
		total += s.Chips + s.Bet
	}
	return total
}

func (t *Table) seat(i int) (*Seat, error) {
	if i < 0 || i >= len(t.Seats) {
		return nil, fmt.Errorf("seat %d: %w", i, ErrSeatNotFound)
	}
	return &t.Seats[i], nil
}

func (t *Table) count(pred func(*Seat) bool) int {
	n := 0
	for i := range t.Seats {
		if pred(&t.Seats[i]) {
			n++
		}
	}
	return n
}

// nextSeat walks clockwise from the seat after from and returns the first
// index matching pred. from itself is tried last. Returns -1 when none match.
func (t *Table) nextSeat(from int, pred func(*Seat) bool) int {
	n := len(t.Seats)
	if n == 0 {
		return -1
	}
	if from < 0 {
		from = n - 1
	}
	for k := 1; k <= n; k++ {
		i := (from + k) % n
		if pred(&t.Seats[i]) {
			return i
		}
	}
	return -1
}

func occupied(s *Seat) bool { return s.Occupied() }

func funded(s *Seat) bool { return s.Occupied() && s.Chips > 0 }

func inHand(s *Seat) bool { return s.Occupied() && s.InHand }

// canAct reports a seat that still has decisions to make this hand.
func canAct(s *Seat) bool { return s.Occupied() && s.InHand && s.Chips > 0 }

// RegisterEventHandler registers a callback function that will be called when events occur
func (t *Table) RegisterEventHandler(handler events.EventHandler) {
	t.eventHandlers = append(t.eventHandlers, handler)
}

// DrainEvents returns the events emitted since the last drain and clears them.
func (t *Table) DrainEvents() []events.Event {
	out := t.Events
	t.Events = nil
	return out
}

// emitEvent notifies all registered handlers of a new event
func (t *Table) emitEvent(event events.Event) {
	t.Events = append(t.Events, event)

	for _, handler := range t.eventHandlers {
		handler(event)
	}
}
