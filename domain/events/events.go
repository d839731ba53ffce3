package events

import (
	"time"

	"github.com/lazharichir/holdem/cards"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// Seating Events
type PlayerJoinedTable struct {
	TableID  string
	PlayerID string
	Seat     int
	At       time.Time
}

func (p PlayerJoinedTable) Name() string { return "PLAYER_JOINED_TABLE" }

type PlayerLeftTable struct {
	TableID   string
	PlayerID  string
	Seat      int
	CashedOut int
	At        time.Time
}

func (p PlayerLeftTable) Name() string { return "PLAYER_LEFT_TABLE" }

type PlayerBoughtIn struct {
	TableID  string
	PlayerID string
	Seat     int
	Amount   int
	At       time.Time
}

func (p PlayerBoughtIn) Name() string { return "PLAYER_BOUGHT_IN" }

// Table Lifecycle Events
type TableStarted struct {
	TableID string
	Players []string
	At      time.Time
}

func (t TableStarted) Name() string { return "TABLE_STARTED" }

// TableOpened fires when too few funded seats remain to deal another hand.
type TableOpened struct {
	TableID string
	Reason  string
	At      time.Time
}

func (t TableOpened) Name() string { return "TABLE_OPENED" }

// Hand Structure Events
type HandStarted struct {
	TableID    string
	HandNumber int
	ButtonSeat int
	Seats      []int
	At         time.Time
}

func (h HandStarted) Name() string { return "HAND_STARTED" }

type BlindPosted struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	Position   int
	Amount     int
	At         time.Time
}

func (b BlindPosted) Name() string { return "BLIND_POSTED" }

// HoleCardsDealt carries private cards and must only reach PlayerID.
type HoleCardsDealt struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	Cards      cards.Stack
	At         time.Time
}

func (h HoleCardsDealt) Name() string { return "HOLE_CARDS_DEALT" }

type CommunityCardsDealt struct {
	TableID    string
	HandNumber int
	Stage      string
	Cards      cards.Stack
	At         time.Time
}

func (c CommunityCardsDealt) Name() string { return "COMMUNITY_CARDS_DEALT" }

// Player Action Events
type PlayerTurnStarted struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	ToCall     int
	At         time.Time
}

func (p PlayerTurnStarted) Name() string { return "PLAYER_TURN_STARTED" }

type PlayerChecked struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	At         time.Time
}

func (p PlayerChecked) Name() string { return "PLAYER_CHECKED" }

type BetPlaced struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	Amount     int
	Total      int
	AllIn      bool
	At         time.Time
}

func (b BetPlaced) Name() string { return "BET_PLACED" }

type PlayerFolded struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	Forfeit    bool
	At         time.Time
}

func (p PlayerFolded) Name() string { return "PLAYER_FOLDED" }

type BettingRoundEnded struct {
	TableID    string
	HandNumber int
	Stage      string
	Pot        int
	At         time.Time
}

func (b BettingRoundEnded) Name() string { return "BETTING_ROUND_ENDED" }

// Pot Events
type PotAwarded struct {
	TableID    string
	HandNumber int
	PlayerID   string
	Seat       int
	Amount     int
	At         time.Time
}

func (p PotAwarded) Name() string { return "POT_AWARDED" }

// ShowdownResolved names the seat that took the pot and every seat that tied
// with it. Ties are not split.
type ShowdownResolved struct {
	TableID     string
	HandNumber  int
	PlayerID    string
	Seat        int
	TiedSeats   []int
	Amount      int
	Description string
	At          time.Time
}

func (s ShowdownResolved) Name() string { return "SHOWDOWN_RESOLVED" }
