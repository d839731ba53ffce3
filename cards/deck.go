package cards

import (
	"errors"
	"fmt"
)

// ErrInsufficientCards is returned when a draw asks for more cards than remain.
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck holds the cards not yet dealt in the current hand
type Deck []Card

// NewDeck creates a standard deck of 52 cards
func NewDeck() Deck {
	deck := make(Deck, 0, len(Suits)*len(Values))
	for _, suit := range Suits {
		for _, value := range Values {
			deck = append(deck, Card{Suit: suit, Value: value})
		}
	}
	return deck
}

// Len returns the number of cards remaining
func (d Deck) Len() int {
	return len(d)
}

// Draw removes n cards from the deck, each picked uniformly from what remains,
// and returns them in draw order. The deck is left untouched on error.
func (d *Deck) Draw(picker Picker, n int) (Stack, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > len(*d) {
		return nil, fmt.Errorf("draw %d of %d: %w", n, len(*d), ErrInsufficientCards)
	}

	drawn := make(Stack, 0, n)
	for range n {
		i := picker.IntN(len(*d))
		drawn = append(drawn, (*d)[i])
		*d = append((*d)[:i], (*d)[i+1:]...)
	}
	return drawn, nil
}
