package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("initial position is balanced", func(t *testing.T) {
		require.Zero(t, EvaluateDefault(NewState()))
	})

	t.Run("swapping the side to move negates the score", func(t *testing.T) {
		s := NewState()
		for ply := 0; ply < 30 && !IsTerminal(s); ply++ {
			require.Equal(t, EvaluateDefault(s), -EvaluateDefault(s.WithTurn(s.Turn.Opponent())), "after %d plies", ply)
			moves := s.LegalMoves()
			s = s.Play(moves[(ply*5)%len(moves)])
		}
	})

	t.Run("junctions are worth more than corners", func(t *testing.T) {
		junction := NewState().Play(Place(D2)).WithTurn(Blue)
		corner := NewState().Play(Place(A1)).WithTurn(Blue)

		require.Greater(t, EvaluateDefault(junction), EvaluateDefault(corner))
	})

	t.Run("material dominates", func(t *testing.T) {
		s := position(t, Blue, 0, 0, map[Point]Color{
			A1: Blue, A4: Blue, A7: Blue, D2: Blue, B6: Blue,
			G1: Orange, G4: Orange, F6: Orange, E4: Orange,
		})

		require.Positive(t, EvaluateDefault(s))
		require.Negative(t, EvaluateDefault(s.WithTurn(Orange)))
	})

	t.Run("custom weights", func(t *testing.T) {
		s := NewState().Play(Place(D2)).WithTurn(Blue)
		w := Weights{Position: 1}

		require.Equal(t, Degree(D2), w.Evaluator()(s))
	})
}
