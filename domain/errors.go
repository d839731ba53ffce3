package domain

import "errors"

var (
	ErrTableNotFound       = errors.New("table not found")
	ErrSeatNotFound        = errors.New("seat not found")
	ErrUnauthenticated     = errors.New("player identity required")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrNotSeatOwner        = errors.New("seat belongs to another player")
	ErrIllegalAction       = errors.New("illegal action")
	ErrInsufficientChips   = errors.New("insufficient chips")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSeatOccupied        = errors.New("seat is occupied")
	ErrAlreadySeated       = errors.New("player already seated at this table")
	ErrNotEnoughPlayers    = errors.New("need at least 2 players to start")
	ErrInvalidTable        = errors.New("invalid table settings")
)
