// Package accounts keeps player balances outside of any table.
package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/lazharichir/holdem/domain"
)

// DefaultStartingBalance is credited the first time a player is seen.
const DefaultStartingBalance = 1_000

// Ledger is an in-memory domain.Bank. Unknown players are opened lazily with
// the starting balance.
type Ledger struct {
	starting int
	balances map[domain.PlayerID]int
	mutex    sync.Mutex
}

func NewLedger(startingBalance int) *Ledger {
	if startingBalance < 0 {
		startingBalance = 0
	}
	return &Ledger{
		starting: startingBalance,
		balances: make(map[domain.PlayerID]int),
	}
}

func (l *Ledger) account(player domain.PlayerID) int {
	balance, ok := l.balances[player]
	if !ok {
		balance = l.starting
		l.balances[player] = balance
	}
	return balance
}

// Balance returns the player's current balance.
func (l *Ledger) Balance(_ context.Context, player domain.PlayerID) (int, error) {
	if player.IsZero() {
		return 0, domain.ErrUnauthenticated
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.account(player), nil
}

func (l *Ledger) Withdraw(_ context.Context, player domain.PlayerID, amount int) error {
	if player.IsZero() {
		return domain.ErrUnauthenticated
	}
	if amount < 0 {
		return fmt.Errorf("withdraw negative amount %d", amount)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	balance := l.account(player)
	if balance < amount {
		return fmt.Errorf("%s has %d, needs %d: %w", player, balance, amount, domain.ErrInsufficientBalance)
	}
	l.balances[player] = balance - amount
	return nil
}

func (l *Ledger) Deposit(_ context.Context, player domain.PlayerID, amount int) error {
	if player.IsZero() {
		return domain.ErrUnauthenticated
	}
	if amount < 0 {
		return fmt.Errorf("deposit negative amount %d", amount)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.balances[player] = l.account(player) + amount
	return nil
}
