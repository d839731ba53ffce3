package domain

import "github.com/lazharichir/holdem/domain/events"

// moveButton passes the button to the next seat dealt into this hand. The
// first hand of a table picks a random seat.
func (e *Engine) moveButton(t *Table) int {
	var button int
	if t.Button < 0 {
		var dealt []int
		for i := range t.Seats {
			if inHand(&t.Seats[i]) {
				dealt = append(dealt, i)
			}
		}
		button = dealt[e.picker.IntN(len(dealt))]
	} else {
		button = t.nextSeat(t.Button, inHand)
	}

	for i := range t.Seats {
		t.Seats[i].Dealer = i == button
	}
	t.Button = button
	return button
}

// assignPositions numbers the seats dealt into the hand clockwise from the
// button. Heads-up the button is the small blind (1) and the other seat the
// big blind (2). Three or more handed the button is 0 and the next two seats
// are 1 and 2.
func assignPositions(t *Table) {
	order := seatingOrder(t, t.Button)

	for i := range t.Seats {
		t.Seats[i].Position = NoPosition
	}
	if len(order) == 2 {
		t.Seats[order[0]].Position = 1
		t.Seats[order[1]].Position = 2
		return
	}
	for pos, i := range order {
		t.Seats[i].Position = pos
	}
}

// seatingOrder lists the seats dealt into the hand starting at from.
func seatingOrder(t *Table, from int) []int {
	order := []int{}
	if from < 0 || from >= len(t.Seats) {
		return order
	}
	n := len(t.Seats)
	for k := 0; k < n; k++ {
		i := (from + k) % n
		if inHand(&t.Seats[i]) {
			order = append(order, i)
		}
	}
	return order
}

// seatAtPosition returns the seat holding pos this hand, or -1.
func seatAtPosition(t *Table, pos int) int {
	for i := range t.Seats {
		if t.Seats[i].Occupied() && t.Seats[i].Position == pos {
			return i
		}
	}
	return -1
}

// postBlind forces a bet without a turn check. A short stack posts what it
// has. The seat keeps no last action so it still gets to act this round.
func (e *Engine) postBlind(t *Table, seat, amount int) {
	s := &t.Seats[seat]
	if amount > s.Chips {
		amount = s.Chips
	}
	s.Chips -= amount
	s.Bet += amount

	t.emitEvent(events.BlindPosted{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		PlayerID:   s.Player.String(),
		Seat:       seat,
		Position:   s.Position,
		Amount:     amount,
		At:         e.clock.Now(),
	})
}
