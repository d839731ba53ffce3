package domain

import (
	"fmt"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/hands"
)

// Showdown ranks every seat still in the hand and pays the whole pot to the
// best one. When hands tie exactly the lowest seat index takes the pot; the
// event still lists every tied seat.
func (e *Engine) Showdown(t *Table) error {
	community := t.Community()

	var (
		contenders []int
		ranked     []hands.Ranked
	)
	for i := range t.Seats {
		s := &t.Seats[i]
		if !inHand(s) {
			continue
		}
		tokens := append(s.Hand.Tokens(), community.Tokens()...)
		r, err := e.evaluator.Solve(tokens)
		if err != nil {
			return fmt.Errorf("solve seat %d: %w", i, err)
		}
		contenders = append(contenders, i)
		ranked = append(ranked, r)
	}
	if len(contenders) == 0 {
		return fmt.Errorf("%w: showdown with no seats in hand", ErrIllegalAction)
	}

	best := e.evaluator.Winners(ranked)
	if len(best) == 0 {
		return fmt.Errorf("%w: evaluator returned no winner", ErrIllegalAction)
	}

	tied := make([]int, len(best))
	for k, w := range best {
		tied[k] = contenders[w]
	}
	winner := tied[0]
	s := &t.Seats[winner]
	amount := t.Pot
	s.Chips += amount
	t.Pot = 0
	t.Round = PreFlop

	t.emitEvent(events.ShowdownResolved{
		TableID:     t.ID,
		HandNumber:  t.HandNumber,
		PlayerID:    s.Player.String(),
		Seat:        winner,
		TiedSeats:   tied,
		Amount:      amount,
		Description: ranked[best[0]].Description,
		At:          e.clock.Now(),
	})
	return nil
}
