package domain

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lazharichir/holdem/cards"
	"github.com/stretchr/testify/require"
)

// fakeBank is an in-memory Bank with an optional forced failure.
type fakeBank struct {
	mu       sync.Mutex
	balances map[PlayerID]int
	failFor  PlayerID
}

func newFakeBank(balance int, players ...PlayerID) *fakeBank {
	b := &fakeBank{balances: make(map[PlayerID]int)}
	for _, p := range players {
		b.balances[p] = balance
	}
	return b
}

func (b *fakeBank) Withdraw(_ context.Context, player PlayerID, amount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if player == b.failFor || b.balances[player] < amount {
		return fmt.Errorf("withdraw %d: %w", amount, ErrInsufficientBalance)
	}
	b.balances[player] -= amount
	return nil
}

func (b *fakeBank) Deposit(_ context.Context, player PlayerID, amount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[player] += amount
	return nil
}

func (b *fakeBank) balance(player PlayerID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[player]
}

// firstPicker always takes the first remaining card, so deals follow deck
// order and the first button is the lowest dealt seat.
type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

const (
	alice PlayerID = "alice"
	bob   PlayerID = "bob"
	carol PlayerID = "carol"
	dave  PlayerID = "dave"
)

var everyone = []PlayerID{alice, bob, carol, dave}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeBank) {
	t.Helper()
	bank := newFakeBank(1000, everyone...)
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	opts = append([]Option{WithPicker(firstPicker{}), WithClock(clock)}, opts...)
	return NewEngine(bank, opts...), bank
}

func newTestTable(t *testing.T, seats, sb, bb, buyIn int) *Table {
	t.Helper()
	tbl, err := NewTable(TableSettings{
		Name:       "test",
		Seats:      seats,
		SmallBlind: sb,
		BigBlind:   bb,
		BuyIn:      buyIn,
	}, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return tbl
}

// startedTable seats players in seats 0..n-1 and starts the table.
func startedTable(t *testing.T, sb, bb, buyIn int, players ...PlayerID) (*Engine, *Table, *fakeBank) {
	t.Helper()
	e, bank := newTestEngine(t)
	tbl := newTestTable(t, 6, sb, bb, buyIn)
	for i, p := range players {
		require.NoError(t, e.Join(context.Background(), tbl, i, p))
	}
	require.NoError(t, e.Start(context.Background(), tbl))
	return e, tbl, bank
}

// act makes whoever holds the turn take action.
func act(t *testing.T, e *Engine, tbl *Table, action Action, amount int) {
	t.Helper()
	seat := tbl.ActiveSeat()
	require.GreaterOrEqual(t, seat, 0, "no active seat")
	require.NoError(t, e.Act(tbl, seat, tbl.Seats[seat].Player, action, amount))
}

// requireInvariants checks the table-wide invariants that must hold after
// every completed command.
func requireInvariants(t *testing.T, tbl *Table, total int) {
	t.Helper()

	require.Equal(t, total, tbl.TotalChips(), "chip conservation")

	active := 0
	for _, s := range tbl.Seats {
		if s.Active {
			active++
		}
	}
	require.LessOrEqual(t, active, 1, "single actor")

	if tbl.Status != TableStatusStarted {
		return
	}

	dealers := 0
	positions := map[int]bool{}
	for _, s := range tbl.Seats {
		if s.Dealer {
			dealers++
			require.True(t, s.Occupied(), "dealer seat must be occupied")
		}
		if s.Position != NoPosition {
			require.True(t, s.Occupied(), "position on a vacant seat")
			require.False(t, positions[s.Position], "duplicate position %d", s.Position)
			positions[s.Position] = true
		}
	}
	require.Equal(t, 1, dealers, "exactly one dealer")
	require.Equal(t, 1, active, "a started table always has someone to act")

	seen := map[cards.Card]bool{}
	mark := func(cs cards.Stack) {
		for _, c := range cs {
			require.False(t, seen[c], "card %v appears twice", c)
			seen[c] = true
		}
	}
	mark(cards.Stack(tbl.Deck))
	mark(tbl.Community())
	mark(tbl.Muck)
	for _, s := range tbl.Seats {
		mark(s.Hand)
	}
	require.Len(t, seen, 52, "deck and dealt cards partition the deck")
}
