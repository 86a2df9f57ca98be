package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	t.Run("initial position places on every point", func(t *testing.T) {
		moves := NewState().LegalMoves()

		require.Len(t, moves, NUM_POINTS)
		for i, m := range moves {
			require.Equal(t, Place(Point(i)), m)
			require.False(t, m.IsCapture())
		}
	})

	t.Run("placement closing a mill offers one move per removable stone", func(t *testing.T) {
		s := position(t, Blue, 5, 5, map[Point]Color{
			A1: Blue, A4: Blue,
			G1: Orange, G4: Orange, G7: Orange, D2: Orange,
		})

		var captures []Move
		for _, m := range s.LegalMoves() {
			if m.To == A7 {
				captures = append(captures, m)
			}
		}

		require.Equal(t, []Move{Place(A7).WithRemoval(D2)}, captures,
			"only the orange stone outside a mill should be removable")
	})

	t.Run("closing a mill never skips the removal", func(t *testing.T) {
		s := position(t, Blue, 5, 5, map[Point]Color{
			A1: Blue, A4: Blue,
			G4: Orange, D2: Orange,
		})

		for _, m := range s.LegalMoves() {
			if m.To == A7 {
				require.True(t, m.IsCapture(), "move %v closes a mill", m)
			}
		}
	})

	t.Run("closing a mill with no enemy stone on board yields no move for that point", func(t *testing.T) {
		s := position(t, Blue, 5, 5, map[Point]Color{A1: Blue, A4: Blue})

		moves := s.LegalMoves()

		require.Len(t, moves, NUM_POINTS-3)
		for _, m := range moves {
			require.NotEqual(t, A7, m.To)
		}
	})

	t.Run("movement slides to empty neighbors only", func(t *testing.T) {
		s := position(t, Blue, 0, 0, map[Point]Color{
			A1: Blue, D2: Blue, G7: Blue, B6: Blue,
			A4: Orange, G4: Orange, D7: Orange, E4: Orange,
		})

		moves := s.LegalMoves()

		require.ElementsMatch(t, []Move{
			Slide(A1, D1),
			Slide(D2, D1), Slide(D2, B2), Slide(D2, D3), Slide(D2, F2),
			Slide(B6, B4), Slide(B6, D6),
		}, moves)
	})

	t.Run("three stones fly to any empty point", func(t *testing.T) {
		s := position(t, Blue, 0, 0, map[Point]Color{
			A1: Blue, D2: Blue, G7: Blue,
			B4: Orange, D6: Orange, F4: Orange, C3: Orange,
		})

		moves := s.LegalMoves()

		require.Len(t, moves, 3*(NUM_POINTS-7))
		require.Contains(t, moves, Slide(A1, E5))
	})

	t.Run("sliding into a mill captures", func(t *testing.T) {
		s := position(t, Orange, 0, 0, map[Point]Color{
			G1: Orange, G4: Orange, D7: Orange, D2: Orange,
			A1: Blue, A4: Blue, C3: Blue,
		})

		moves := s.LegalMoves()

		require.Contains(t, moves, Move{From: D7, To: G7, Remove: A1})
		require.Contains(t, moves, Move{From: D7, To: G7, Remove: C3})
		require.NotContains(t, moves, Slide(D7, G7))
	})

	t.Run("does not change the input state", func(t *testing.T) {
		s := position(t, Blue, 5, 5, map[Point]Color{
			A1: Blue, A4: Blue,
			G1: Orange, G4: Orange, G7: Orange, D2: Orange,
		})
		before := s

		s.LegalMoves()
		HasLegalMove(s)

		require.Equal(t, before, s)
	})
}

func TestIsLegal(t *testing.T) {
	s := NewState().Play(Place(D2))

	require.True(t, IsLegal(s, Place(D3)))
	require.False(t, IsLegal(s, Place(D2)), "occupied target")
	require.False(t, IsLegal(s, Slide(D2, D3)), "orange has stones in hand")
	require.False(t, IsLegal(s, Place(D3).WithRemoval(D2)), "no mill was closed")
}

func TestMobility(t *testing.T) {
	s := position(t, Blue, 0, 3, map[Point]Color{
		A1: Blue, D2: Blue, G7: Blue, B6: Blue,
		A4: Orange, G4: Orange, D7: Orange, E4: Orange,
	})

	require.Equal(t, 7, Mobility(&s, Blue))
	require.Equal(t, NUM_POINTS-8, Mobility(&s, Orange), "orange still places from hand")
}
