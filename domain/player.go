package domain

import "context"

// PlayerID identifies a player. The zero value means no player.
type PlayerID string

func (p PlayerID) IsZero() bool {
	return p == ""
}

func (p PlayerID) String() string {
	return string(p)
}

// Bank holds player balances outside the table. Buy-ins are withdrawn from it
// and chips are deposited back when a player leaves.
type Bank interface {
	Withdraw(ctx context.Context, player PlayerID, amount int) error
	Deposit(ctx context.Context, player PlayerID, amount int) error
}
