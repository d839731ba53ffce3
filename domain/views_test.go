package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicViewHidesHoleCards(t *testing.T) {
	_, tbl, _ := startedTable(t, 5, 10, 100, alice, bob)

	view := BuildPublicView(tbl)
	data, err := json.Marshal(view)
	require.NoError(t, err)

	for _, s := range tbl.Seats {
		for _, c := range s.Hand {
			assert.NotContains(t, string(data), `"value":"`+string(c.Value)+`","suit":"`+string(c.Suit)+`"`)
		}
	}
	assert.NotContains(t, string(data), "solved")
	assert.NotContains(t, string(data), "deck")

	require.Len(t, view.Seats, 6)
	assert.Equal(t, alice, view.Seats[0].Player)
	assert.True(t, view.Seats[0].HasCards)
	assert.True(t, view.Seats[0].Dealer)
	assert.Equal(t, 0, view.ActiveSeat)
	assert.Equal(t, 10, view.HighestBet)
	assert.Equal(t, "preflop", view.Stage)
	assert.Equal(t, TableStatusStarted, view.Status)
}

func TestPrivateView(t *testing.T) {
	_, tbl, _ := startedTable(t, 5, 10, 100, alice, bob)

	view, ok := BuildPrivateView(tbl, alice)
	require.True(t, ok)
	assert.Equal(t, 0, view.Seat)
	assert.Equal(t, tbl.Seats[0].Hand, view.Hand)
	assert.Equal(t, tbl.Seats[0].Solved, view.Solved)
	assert.True(t, view.Active)
	assert.True(t, view.InHand)
	assert.Equal(t, 5, view.ToCall)
	assert.Equal(t, []Action{ActionBet, ActionFold}, view.Allowed)

	bobView, ok := BuildPrivateView(tbl, bob)
	require.True(t, ok)
	assert.False(t, bobView.Active)
	assert.Empty(t, bobView.Allowed)
	assert.NotEqual(t, view.Hand, bobView.Hand)

	_, ok = BuildPrivateView(tbl, carol)
	assert.False(t, ok)
}
