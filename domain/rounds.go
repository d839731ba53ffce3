package domain

import (
	"fmt"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain/events"
)

// StartRound deals a new hand on the same table record. Seats without chips
// sit out. When fewer than two seats can be dealt in the table goes back to
// open and waits for another start.
func (e *Engine) StartRound(t *Table) error {
	t.Deck = cards.NewDeck()
	t.Flop, t.Turn, t.River, t.Muck = nil, nil, nil, nil
	t.Round = PreFlop

	for i := range t.Seats {
		s := &t.Seats[i]
		s.resetForHand()
		s.InHand = funded(s)
	}

	if t.count(inHand) < 2 {
		for i := range t.Seats {
			t.Seats[i].InHand = false
		}
		t.Status = TableStatusOpen
		t.emitEvent(events.TableOpened{
			TableID: t.ID,
			Reason:  "not enough funded seats",
			At:      e.clock.Now(),
		})
		return nil
	}

	t.HandNumber++
	button := e.moveButton(t)
	assignPositions(t)

	t.emitEvent(events.HandStarted{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		ButtonSeat: button,
		Seats:      seatingOrder(t, button),
		At:         e.clock.Now(),
	})

	sb := seatAtPosition(t, 1)
	bb := seatAtPosition(t, 2)
	e.postBlind(t, sb, t.SmallBlind)
	e.postBlind(t, bb, t.BigBlind)

	// deal from the seat after the button, as at a real table
	for _, i := range seatingOrder(t, t.nextSeat(button, inHand)) {
		hole, err := t.Deck.Draw(e.picker, 2)
		if err != nil {
			return fmt.Errorf("deal hole cards: %w", err)
		}
		t.Seats[i].Hand = hole
		t.emitEvent(events.HoleCardsDealt{
			TableID:    t.ID,
			HandNumber: t.HandNumber,
			PlayerID:   t.Seats[i].Player.String(),
			Seat:       i,
			Cards:      hole.Clone(),
			At:         e.clock.Now(),
		})
	}
	e.solve(t)

	if bettingClosed(t) {
		return e.runOut(t)
	}
	e.activate(t, t.nextSeat(bb, canAct))
	return nil
}

// SetRound moves the hand to its next stage. Before the river it reveals the
// next community cards; after river betting it resolves the showdown and
// deals the next hand.
func (e *Engine) SetRound(t *Table) error {
	if t.Round >= River {
		if err := e.Showdown(t); err != nil {
			return err
		}
		return e.StartRound(t)
	}

	t.Round = t.Round.Next()
	if err := e.DealStage(t, t.Round); err != nil {
		return err
	}
	e.solve(t)
	return nil
}

// DealStage reveals the community cards belonging to stage. Stages already
// dealt are left alone.
func (e *Engine) DealStage(t *Table, stage Stage) error {
	var (
		dst *cards.Stack
		n   int
	)
	switch stage {
	case Flop:
		dst, n = &t.Flop, 3
	case Turn:
		dst, n = &t.Turn, 1
	case River:
		dst, n = &t.River, 1
	default:
		return nil
	}
	if len(*dst) == n {
		return nil
	}

	drawn, err := t.Deck.Draw(e.picker, n)
	if err != nil {
		return fmt.Errorf("deal %s: %w", stage, err)
	}
	*dst = drawn

	t.emitEvent(events.CommunityCardsDealt{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		Stage:      stage.String(),
		Cards:      drawn.Clone(),
		At:         e.clock.Now(),
	})
	return nil
}

// EndRound closes the current betting round: bets are swept into the pot and
// the hand either advances, runs out, or is awarded to the last seat in.
func (e *Engine) EndRound(t *Table) error {
	for i := range t.Seats {
		s := &t.Seats[i]
		t.Pot += s.Bet
		s.Bet = 0
		s.Last = ActionNone
		s.Active = false
	}

	t.emitEvent(events.BettingRoundEnded{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		Stage:      t.Round.String(),
		Pot:        t.Pot,
		At:         e.clock.Now(),
	})

	if t.count(inHand) == 1 {
		return e.awardUncontested(t)
	}
	if t.Round == River {
		return e.SetRound(t)
	}
	if bettingClosed(t) {
		return e.runOut(t)
	}

	if err := e.SetRound(t); err != nil {
		return err
	}
	e.activate(t, t.nextSeat(t.Button, canAct))
	return nil
}

// runOut deals the remaining community cards with no more betting and
// settles the hand.
func (e *Engine) runOut(t *Table) error {
	for i := range t.Seats {
		t.Pot += t.Seats[i].Bet
		t.Seats[i].Bet = 0
		t.Seats[i].Active = false
	}
	for t.Round < River {
		if err := e.SetRound(t); err != nil {
			return err
		}
	}
	return e.SetRound(t)
}

func (e *Engine) awardUncontested(t *Table) error {
	winner := t.nextSeat(-1, inHand)
	s := &t.Seats[winner]
	amount := t.Pot
	s.Chips += amount
	t.Pot = 0

	t.emitEvent(events.PotAwarded{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		PlayerID:   s.Player.String(),
		Seat:       winner,
		Amount:     amount,
		At:         e.clock.Now(),
	})
	return e.StartRound(t)
}

func (e *Engine) activate(t *Table, seat int) {
	for i := range t.Seats {
		t.Seats[i].Active = false
	}
	if seat < 0 {
		return
	}
	s := &t.Seats[seat]
	s.Active = true

	t.emitEvent(events.PlayerTurnStarted{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		PlayerID:   s.Player.String(),
		Seat:       seat,
		ToCall:     t.HighestBet() - s.Bet,
		At:         e.clock.Now(),
	})
}

// solve refreshes every dealt seat's hole plus community tokens.
func (e *Engine) solve(t *Table) {
	community := t.Community().Tokens()
	for i := range t.Seats {
		s := &t.Seats[i]
		if !s.Occupied() || len(s.Hand) == 0 {
			s.Solved = nil
			continue
		}
		s.Solved = append(s.Hand.Tokens(), community...)
	}
}

// bettingClosed reports that nobody is left to make a decision: every seat
// still in is all-in, or a single seat can act and has already matched.
func bettingClosed(t *Table) bool {
	var actors []int
	for i := range t.Seats {
		if canAct(&t.Seats[i]) {
			actors = append(actors, i)
		}
	}
	switch len(actors) {
	case 0:
		return true
	case 1:
		return t.Seats[actors[0]].Bet >= t.HighestBet()
	}
	return false
}
