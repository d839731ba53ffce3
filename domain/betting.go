package domain

import (
	"fmt"
	"slices"

	"github.com/lazharichir/holdem/domain/events"
)

// Allowed lists the actions open to seat. Only the active seat has any.
func (t *Table) Allowed(seat int) []Action {
	if seat < 0 || seat >= len(t.Seats) {
		return nil
	}
	s := &t.Seats[seat]
	if !s.Active || !s.InHand {
		return nil
	}

	highest := t.HighestBet()
	switch {
	case s.Bet == highest:
		return []Action{ActionBet, ActionCheck, ActionFold}
	case s.Bet < highest:
		return []Action{ActionBet, ActionFold}
	}
	return nil
}

// Act applies a player's action on their seat. Bets are incremental: amount
// is added to the seat's current bet. A bet must reach the highest bet unless
// it puts the seat all-in.
func (e *Engine) Act(t *Table, seat int, player PlayerID, action Action, amount int) error {
	if player.IsZero() {
		return ErrUnauthenticated
	}
	s, err := t.seat(seat)
	if err != nil {
		return err
	}
	if s.Player != player {
		return fmt.Errorf("seat %d: %w", seat, ErrNotSeatOwner)
	}
	if !s.Active {
		return ErrNotYourTurn
	}
	if !slices.Contains(t.Allowed(seat), action) {
		return fmt.Errorf("%w: %q facing a bet of %d", ErrIllegalAction, action, t.HighestBet()-s.Bet)
	}

	now := e.clock.Now()
	switch action {
	case ActionBet:
		if amount <= 0 {
			return fmt.Errorf("%w: bet must be positive", ErrIllegalAction)
		}
		if amount > s.Chips {
			return fmt.Errorf("bet %d with %d behind: %w", amount, s.Chips, ErrInsufficientChips)
		}
		allIn := amount == s.Chips
		if s.Bet+amount < t.HighestBet() && !allIn {
			return fmt.Errorf("%w: bet of %d does not cover %d to call", ErrIllegalAction, amount, t.HighestBet()-s.Bet)
		}

		s.Chips -= amount
		s.Bet += amount
		t.emitEvent(events.BetPlaced{
			TableID:    t.ID,
			HandNumber: t.HandNumber,
			PlayerID:   player.String(),
			Seat:       seat,
			Amount:     amount,
			Total:      s.Bet,
			AllIn:      allIn,
			At:         now,
		})

	case ActionCheck:
		t.emitEvent(events.PlayerChecked{
			TableID:    t.ID,
			HandNumber: t.HandNumber,
			PlayerID:   player.String(),
			Seat:       seat,
			At:         now,
		})

	case ActionFold:
		s.InHand = false
		t.emitEvent(events.PlayerFolded{
			TableID:    t.ID,
			HandNumber: t.HandNumber,
			PlayerID:   player.String(),
			Seat:       seat,
			At:         now,
		})
	}

	s.Last = action
	s.Active = false
	return e.advance(t, seat)
}

// advance hands the turn on from seat or closes the betting round. The round
// is over when the next seat able to act has already acted and matched the
// highest bet.
func (e *Engine) advance(t *Table, from int) error {
	if t.count(inHand) <= 1 {
		return e.EndRound(t)
	}

	next := t.nextSeat(from, canAct)
	if next < 0 {
		return e.EndRound(t)
	}
	n := &t.Seats[next]
	if n.Last != ActionNone && n.Bet == t.HighestBet() {
		return e.EndRound(t)
	}

	e.activate(t, next)
	return nil
}

func (e *Engine) Bet(t *Table, seat int, player PlayerID, amount int) error {
	return e.Act(t, seat, player, ActionBet, amount)
}

func (e *Engine) Check(t *Table, seat int, player PlayerID) error {
	return e.Act(t, seat, player, ActionCheck, 0)
}

func (e *Engine) Fold(t *Table, seat int, player PlayerID) error {
	return e.Act(t, seat, player, ActionFold, 0)
}
