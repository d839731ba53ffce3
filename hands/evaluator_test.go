package hands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	eval := NewEvaluator()

	t.Run("ranks stronger hands higher", func(t *testing.T) {
		board := []string{"2c", "7d", "9h", "Js", "Kd"}

		highCard, err := eval.Solve(append([]string{"3s", "4h"}, board...))
		require.NoError(t, err)
		pair, err := eval.Solve(append([]string{"Kh", "4h"}, board...))
		require.NoError(t, err)
		twoPair, err := eval.Solve(append([]string{"Kh", "Jh"}, board...))
		require.NoError(t, err)
		trips, err := eval.Solve(append([]string{"Kh", "Kc"}, board...))
		require.NoError(t, err)

		assert.Greater(t, pair.Score, highCard.Score)
		assert.Greater(t, twoPair.Score, pair.Score)
		assert.Greater(t, trips.Score, twoPair.Score)
		assert.NotEmpty(t, trips.Description)
		assert.Len(t, trips.Cards, 7)
	})

	t.Run("straight flush beats four of a kind", func(t *testing.T) {
		board := []string{"9h", "Th", "Jh", "9c", "9d"}
		sf, err := eval.Solve(append([]string{"Qh", "Kh"}, board...))
		require.NoError(t, err)
		quads, err := eval.Solve(append([]string{"9s", "2c"}, board...))
		require.NoError(t, err)
		assert.Greater(t, sf.Score, quads.Score)
	})

	t.Run("five and six cards share the seven card scale", func(t *testing.T) {
		five, err := eval.Solve([]string{"Ah", "Kh", "Qh", "Jh", "Th"})
		require.NoError(t, err)
		six, err := eval.Solve([]string{"2c", "Ah", "Kh", "Qh", "Jh", "Th"})
		require.NoError(t, err)
		seven, err := eval.Solve([]string{"2c", "3d", "Ah", "Kh", "Qh", "Jh", "Th"})
		require.NoError(t, err)
		assert.Equal(t, seven.Score, five.Score)
		assert.Equal(t, seven.Score, six.Score)
		assert.NotEmpty(t, six.Description)

		pair, err := eval.Solve([]string{"Kc", "Kd", "2h", "7s", "9c", "3d"})
		require.NoError(t, err)
		assert.Less(t, pair.Score, six.Score)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := eval.Solve([]string{"As", "Ks"})
		assert.ErrorIs(t, err, ErrIncompleteHand)

		_, err = eval.Solve([]string{"As", "Ks", "Qs", "Js", "Ts", "9s", "8s", "7s"})
		assert.ErrorIs(t, err, ErrIncompleteHand)

		_, err = eval.Solve([]string{"As", "Ks", "Qs", "Js", "Ts", "9s", "Xx"})
		assert.ErrorIs(t, err, ErrInvalidCard)

		_, err = eval.Solve([]string{"As", "As", "Qs", "Js", "Ts", "9s", "8s"})
		assert.ErrorIs(t, err, ErrDuplicateCard)
	})
}

func TestWinners(t *testing.T) {
	eval := NewEvaluator()

	tests := []struct {
		name   string
		scores []int
		want   []int
	}{
		{"empty", nil, nil},
		{"single", []int{10}, []int{0}},
		{"clear winner", []int{10, 30, 20}, []int{1}},
		{"tie", []int{30, 10, 30}, []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ranked []Ranked
			for _, s := range tt.scores {
				ranked = append(ranked, Ranked{Score: s})
			}
			assert.Equal(t, tt.want, eval.Winners(ranked))
		})
	}
}

func TestSplitBoardTies(t *testing.T) {
	eval := NewEvaluator()
	board := []string{"As", "Ks", "Qs", "Js", "Ts"}

	a, err := eval.Solve(append([]string{"2c", "3d"}, board...))
	require.NoError(t, err)
	b, err := eval.Solve(append([]string{"4c", "5d"}, board...))
	require.NoError(t, err)

	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, []int{0, 1}, eval.Winners([]Ranked{a, b}))
}
