package domain

import (
	"context"
	"fmt"

	"github.com/lazharichir/holdem/domain/events"
)

// Join seats player at seat. Joining a table that is already playing buys in
// straight away; the new seat is dealt in from the next hand.
func (e *Engine) Join(ctx context.Context, t *Table, seat int, player PlayerID) error {
	if player.IsZero() {
		return ErrUnauthenticated
	}
	s, err := t.seat(seat)
	if err != nil {
		return err
	}
	if t.SeatOf(player) >= 0 {
		return ErrAlreadySeated
	}
	if s.Occupied() {
		return fmt.Errorf("seat %d: %w", seat, ErrSeatOccupied)
	}

	if t.Status == TableStatusStarted {
		if err := e.bank.Withdraw(ctx, player, t.BuyIn); err != nil {
			return fmt.Errorf("buy-in for %s: %w", player, err)
		}
	}

	s.vacate()
	s.Player = player

	t.emitEvent(events.PlayerJoinedTable{
		TableID:  t.ID,
		PlayerID: player.String(),
		Seat:     seat,
		At:       e.clock.Now(),
	})

	if t.Status == TableStatusStarted {
		e.creditBuyIn(t, seat)
	}
	return nil
}

// Leave vacates the seat and returns the remaining stack to the bank. Any bet
// the seat has in front of it during a hand stays in the pot.
func (e *Engine) Leave(ctx context.Context, t *Table, seat int, player PlayerID) error {
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

	playing := t.Status == TableStatusStarted && s.InHand
	wasActive := s.Active
	cashOut := s.Chips

	if t.Status == TableStatusStarted {
		// A folded seat can still carry a dead blind or bet for this round.
		t.Pot += s.Bet
		s.Bet = 0
	}
	if playing {
		t.Muck = append(t.Muck, s.Hand...)
		s.InHand = false
		t.emitEvent(events.PlayerFolded{
			TableID:    t.ID,
			HandNumber: t.HandNumber,
			PlayerID:   player.String(),
			Seat:       seat,
			Forfeit:    true,
			At:         e.clock.Now(),
		})
	}

	s.vacate()

	t.emitEvent(events.PlayerLeftTable{
		TableID:   t.ID,
		PlayerID:  player.String(),
		Seat:      seat,
		CashedOut: cashOut,
		At:        e.clock.Now(),
	})

	if playing && (wasActive || t.count(inHand) == 1) {
		if err := e.advance(t, seat); err != nil {
			return err
		}
	}

	if cashOut > 0 {
		if err := e.bank.Deposit(ctx, player, cashOut); err != nil {
			return fmt.Errorf("cash out for %s: %w", player, err)
		}
	}
	return nil
}

// Start moves an open table into play: every occupied seat without chips buys
// in, then the first hand is dealt.
func (e *Engine) Start(ctx context.Context, t *Table) error {
	if t.Status == TableStatusStarted {
		return fmt.Errorf("%w: table already started", ErrIllegalAction)
	}
	if t.count(occupied) < 2 {
		return ErrNotEnoughPlayers
	}

	var buyIns []int
	for i := range t.Seats {
		if t.Seats[i].Occupied() && t.Seats[i].Chips == 0 {
			buyIns = append(buyIns, i)
		}
	}

	for n, i := range buyIns {
		if err := e.bank.Withdraw(ctx, t.Seats[i].Player, t.BuyIn); err != nil {
			e.refund(ctx, t, buyIns[:n])
			return fmt.Errorf("buy-in for %s: %w", t.Seats[i].Player, err)
		}
	}
	for _, i := range buyIns {
		e.creditBuyIn(t, i)
	}

	var players []string
	for i := range t.Seats {
		if t.Seats[i].Occupied() {
			t.Seats[i].Bet = 0
			players = append(players, t.Seats[i].Player.String())
		}
	}

	t.Status = TableStatusStarted
	t.emitEvent(events.TableStarted{
		TableID: t.ID,
		Players: players,
		At:      e.clock.Now(),
	})

	return e.StartRound(t)
}

func (e *Engine) creditBuyIn(t *Table, seat int) {
	s := &t.Seats[seat]
	s.Chips = t.BuyIn
	s.Bet = 0
	t.emitEvent(events.PlayerBoughtIn{
		TableID:  t.ID,
		PlayerID: s.Player.String(),
		Seat:     seat,
		Amount:   t.BuyIn,
		At:       e.clock.Now(),
	})
}

// refund returns buy-ins already withdrawn when a later withdrawal fails.
// Deposit errors are ignored; the original failure is what gets reported.
func (e *Engine) refund(ctx context.Context, t *Table, seats []int) {
	for _, i := range seats {
		_ = e.bank.Deposit(ctx, t.Seats[i].Player, t.BuyIn)
	}
}
