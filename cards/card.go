package cards

import (
	"fmt"
	"strings"
)

// CardFromString parses a value followed by a suit. Suits may be unicode
// glyphs or letters in either case and ten may be "10" or "T":
// "10♠", "10s", "TS" all yield Card{Suit: Spades, Value: Ten}.
func CardFromString(s string) (Card, error) {
	for _, suit := range Suits {
		for _, form := range []string{suit.Symbol(), string(suit), strings.ToLower(string(suit))} {
			rest, ok := strings.CutSuffix(s, form)
			if !ok {
				continue
			}
			value, err := parseValue(rest)
			if err != nil {
				return Card{}, err
			}
			return Card{Suit: suit, Value: value}, nil
		}
	}
	return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
}

func parseValue(s string) (Value, error) {
	upper := strings.ToUpper(s)
	if upper == "T" {
		return Ten, nil
	}
	for _, v := range Values {
		if string(v) == upper {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid card value: %q", s)
}

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
	Spades   Suit = "S"
)

// Suits lists every suit in deck order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// Value represents a card value
type Value string

const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

// Values lists every value from lowest to highest
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Rank returns the numeric rank of the value, 2 through 14 (ace high)
func (v Value) Rank() int {
	for i, val := range Values {
		if val == v {
			return i + 2
		}
	}
	return 0
}

// Card represents a playing card
type Card struct {
	Value Value `json:"value"`
	Suit  Suit  `json:"suit"`
}

// String returns the string representation of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value, c.Suit.Symbol())
}

// Token returns the two-character form used by hand evaluators, e.g. "Th" or "As".
func (c Card) Token() string {
	v := string(c.Value)
	if c.Value == Ten {
		v = "T"
	}
	return v + strings.ToLower(string(c.Suit))
}

// IsValid reports whether the card is one of the 52 standard cards
func (c Card) IsValid() bool {
	return c.Value.Rank() > 0 && c.Suit.Symbol() != "?"
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}
