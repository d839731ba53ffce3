package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	_, tbl, _ := startedTable(t, 5, 10, 100, alice, bob, carol)

	assert.Equal(t, []Action{ActionBet, ActionFold}, tbl.Allowed(0), "button faces the big blind")
	assert.Nil(t, tbl.Allowed(1), "only the active seat may act")
	assert.Nil(t, tbl.Allowed(7))

	tbl.Seats[0].Bet = 10
	assert.Equal(t, []Action{ActionBet, ActionCheck, ActionFold}, tbl.Allowed(0))
}

func TestActRejections(t *testing.T) {
	e, tbl, _ := startedTable(t, 5, 10, 100, alice, bob, carol)
	total := tbl.TotalChips()

	tests := []struct {
		name   string
		seat   int
		player PlayerID
		action Action
		amount int
		want   error
	}{
		{"no identity", 0, "", ActionFold, 0, ErrUnauthenticated},
		{"unknown seat", 12, alice, ActionFold, 0, ErrSeatNotFound},
		{"someone else's seat", 0, bob, ActionFold, 0, ErrNotSeatOwner},
		{"out of turn", 1, bob, ActionFold, 0, ErrNotYourTurn},
		{"check facing a bet", 0, alice, ActionCheck, 0, ErrIllegalAction},
		{"unknown action", 0, alice, Action("raise"), 10, ErrIllegalAction},
		{"zero bet", 0, alice, ActionBet, 0, ErrIllegalAction},
		{"negative bet", 0, alice, ActionBet, -5, ErrIllegalAction},
		{"under-call", 0, alice, ActionBet, 5, ErrIllegalAction},
		{"more than the stack", 0, alice, ActionBet, 101, ErrInsufficientChips},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]Seat(nil), tbl.Seats...)
			err := e.Act(tbl, tt.seat, tt.player, tt.action, tt.amount)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, tbl.Seats, "rejected action must not mutate seats")
			assert.Equal(t, 0, tbl.ActiveSeat())
			assert.Equal(t, total, tbl.TotalChips())
		})
	}
}

func TestFoldedAndAllInSeatsAreSkipped(t *testing.T) {
	e, tbl, _ := startedTable(t, 5, 10, 100, alice, bob, carol, dave)
	// button 0, sb 1, bb 2, dave (3) acts first
	require.Equal(t, 3, tbl.ActiveSeat())

	act(t, e, tbl, ActionFold, 0)  // dave
	act(t, e, tbl, ActionBet, 100) // alice all-in
	assert.Equal(t, 1, tbl.ActiveSeat())
	act(t, e, tbl, ActionBet, 95) // bob all-in call
	assert.Equal(t, 2, tbl.ActiveSeat(), "all-in seats are passed over")
	act(t, e, tbl, ActionFold, 0) // carol

	// alice and bob are all-in: the board runs out and a new hand begins
	assert.Equal(t, 2, tbl.HandNumber)
	assert.Equal(t, 400, tbl.TotalChips())
}
