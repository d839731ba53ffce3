package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, 52)

	seen := make(map[Card]bool)
	for _, c := range deck {
		require.True(t, c.IsValid(), "card %v should be valid", c)
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
}

func TestDeckDraw(t *testing.T) {
	t.Run("draws distinct cards and shrinks the deck", func(t *testing.T) {
		deck := NewDeck()
		picker := NewSeededPicker(7)

		dealt := Stack{}
		for _, n := range []int{2, 2, 3, 1, 1} {
			before := deck.Len()
			drawn, err := deck.Draw(picker, n)
			require.NoError(t, err)
			require.Len(t, drawn, n)
			assert.Equal(t, before-n, deck.Len())

			for _, c := range drawn {
				assert.False(t, dealt.Contains(c), "card %v dealt twice", c)
				assert.False(t, Stack(deck).Contains(c), "card %v still in deck", c)
				dealt = append(dealt, c)
			}
		}
		assert.Equal(t, 52, len(dealt)+deck.Len())
	})

	t.Run("insufficient cards leaves deck untouched", func(t *testing.T) {
		deck := Deck{{Value: Ace, Suit: Spades}, {Value: King, Suit: Spades}}
		drawn, err := deck.Draw(RandomPicker(), 3)
		require.ErrorIs(t, err, ErrInsufficientCards)
		assert.Nil(t, drawn)
		assert.Len(t, deck, 2)
	})

	t.Run("draw everything", func(t *testing.T) {
		deck := NewDeck()
		drawn, err := deck.Draw(RandomPicker(), 52)
		require.NoError(t, err)
		assert.Len(t, drawn, 52)
		assert.Equal(t, 0, deck.Len())
	})

	t.Run("seeded pickers are reproducible", func(t *testing.T) {
		a, b := NewDeck(), NewDeck()
		da, err := a.Draw(NewSeededPicker(42), 5)
		require.NoError(t, err)
		db, err := b.Draw(NewSeededPicker(42), 5)
		require.NoError(t, err)
		assert.Equal(t, da, db)
	})
}
