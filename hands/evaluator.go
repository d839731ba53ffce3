// Package hands ranks Hold'em hands. The engine only depends on the
// Evaluator contract; PaulHankin is the shipped implementation.
package hands

import (
	"errors"
	"fmt"

	"github.com/lazharichir/holdem/cards"
	"github.com/paulhankin/poker"
)

var (
	ErrInvalidCard    = errors.New("invalid card token")
	ErrIncompleteHand = errors.New("hand needs five to seven cards")
	ErrDuplicateCard  = errors.New("duplicate card in hand")
)

// Ranked is the result of solving one hand. Hands are totally ordered by
// Score, higher wins. Description names the made hand and breaks ties for
// display.
type Ranked struct {
	Cards       []string `json:"cards"`
	Score       int      `json:"score"`
	Description string   `json:"description"`
}

// Evaluator solves hands of five to seven canonical tokens ("As", "Th") and
// picks the best among them. Fewer than five cards cannot be ranked.
type Evaluator interface {
	Solve(tokens []string) (Ranked, error)
	Winners(hands []Ranked) []int
}

// PaulHankin evaluates hands with github.com/paulhankin/poker. Five, six and
// seven card hands share one score scale: the best five-card subset.
type PaulHankin struct{}

// NewEvaluator returns the default evaluator.
func NewEvaluator() PaulHankin {
	return PaulHankin{}
}

func (PaulHankin) Solve(tokens []string) (Ranked, error) {
	if len(tokens) < 5 || len(tokens) > 7 {
		return Ranked{}, fmt.Errorf("%w: got %d", ErrIncompleteHand, len(tokens))
	}

	hand := make([]poker.Card, len(tokens))
	seen := make(map[cards.Card]bool, len(tokens))
	for i, tok := range tokens {
		c, err := cards.CardFromString(tok)
		if err != nil {
			return Ranked{}, fmt.Errorf("%w: %s", ErrInvalidCard, tok)
		}
		if seen[c] {
			return Ranked{}, fmt.Errorf("%w: %s", ErrDuplicateCard, tok)
		}
		seen[c] = true

		pc, err := toPoker(c)
		if err != nil {
			return Ranked{}, err
		}
		hand[i] = pc
	}

	score, best := evaluate(hand)
	desc, err := poker.Describe(best)
	if err != nil {
		return Ranked{}, fmt.Errorf("describe hand: %w", err)
	}

	return Ranked{
		Cards:       append([]string(nil), tokens...),
		Score:       int(score),
		Description: desc,
	}, nil
}

// evaluate scores a five to seven card hand and returns the cards to
// describe. Describe takes 5 or 7 cards, so a six-card hand is described by
// its best five.
func evaluate(hand []poker.Card) (int16, []poker.Card) {
	switch len(hand) {
	case 7:
		var h [7]poker.Card
		copy(h[:], hand)
		return poker.Eval7(&h), hand
	case 6:
		var (
			score int16 = -1
			best  []poker.Card
		)
		for skip := range hand {
			var h [5]poker.Card
			n := 0
			for i, c := range hand {
				if i != skip {
					h[n] = c
					n++
				}
			}
			if s := poker.Eval5(&h); s > score {
				score, best = s, h[:]
			}
		}
		return score, best
	default:
		var h [5]poker.Card
		copy(h[:], hand)
		return poker.Eval5(&h), hand
	}
}

// Winners returns the indexes of every hand sharing the best score, in input order.
func (PaulHankin) Winners(hands []Ranked) []int {
	if len(hands) == 0 {
		return nil
	}

	best := hands[0].Score
	for _, h := range hands[1:] {
		if h.Score > best {
			best = h.Score
		}
	}

	var winners []int
	for i, h := range hands {
		if h.Score == best {
			winners = append(winners, i)
		}
	}
	return winners
}

func toPoker(c cards.Card) (poker.Card, error) {
	var (
		zero poker.Card
		suit poker.Suit
	)
	switch c.Suit {
	case cards.Clubs:
		suit = poker.Club
	case cards.Diamonds:
		suit = poker.Diamond
	case cards.Hearts:
		suit = poker.Heart
	case cards.Spades:
		suit = poker.Spade
	default:
		return zero, fmt.Errorf("%w: suit %q", ErrInvalidCard, c.Suit)
	}

	rank := c.Value.Rank()
	if rank == 14 {
		rank = 1
	}

	pc, err := poker.MakeCard(suit, poker.Rank(rank))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	return pc, nil
}
