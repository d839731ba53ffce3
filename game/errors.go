package game

import (
	"context"
	"errors"

	"github.com/lazharichir/holdem/cards"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/store"
	"github.com/lazharichir/holdem/table"
)

// ErrorKind classifies failures for transports.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindNotFound          ErrorKind = "not_found"
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindIllegalAction     ErrorKind = "illegal_action"
	KindInsufficientChips ErrorKind = "insufficient_chips"
	KindSeatConflict      ErrorKind = "seat_conflict"
	KindInsufficientCards ErrorKind = "insufficient_cards"
	KindInvalid           ErrorKind = "invalid"
	KindConflict          ErrorKind = "conflict"
	KindInternal          ErrorKind = "internal"
)

var kinds = []struct {
	target error
	kind   ErrorKind
}{
	{domain.ErrTableNotFound, KindNotFound},
	{domain.ErrSeatNotFound, KindNotFound},
	{domain.ErrUnauthenticated, KindUnauthenticated},
	{domain.ErrNotYourTurn, KindUnauthorized},
	{domain.ErrNotSeatOwner, KindUnauthorized},
	{domain.ErrIllegalAction, KindIllegalAction},
	{domain.ErrNotEnoughPlayers, KindIllegalAction},
	{domain.ErrInsufficientChips, KindInsufficientChips},
	{domain.ErrInsufficientBalance, KindInsufficientChips},
	{domain.ErrSeatOccupied, KindSeatConflict},
	{domain.ErrAlreadySeated, KindSeatConflict},
	{domain.ErrInvalidTable, KindInvalid},
	{cards.ErrInsufficientCards, KindInsufficientCards},
	{store.ErrConflict, KindConflict},
}

// Kind returns the category of err. Anything unrecognised is internal.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.kind
		}
	}
	return KindInternal
}

// ErrorMessage is the text shown to clients. Internal failures are not described.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, table.ErrStopped):
		return "server is shutting down"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	}

	switch Kind(err) {
	case KindInternal:
		return "internal error"
	case KindConflict:
		return "table changed, try again"
	}
	return err.Error()
}
