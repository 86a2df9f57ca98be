package game

import "fmt"

// Stones each side starts with in hand.
const STONES_PER_SIDE = 10

// Color identifies a side, or the absence of a stone on a point.
type Color uint8

const (
	None Color = iota
	Blue
	Orange
)

// Opponent returns the other side. None has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Blue:
		return Orange
	case Orange:
		return Blue
	default:
		return None
	}
}

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	default:
		return "none"
	}
}

// ParseColor accepts exactly "blue" or "orange".
func ParseColor(s string) (Color, error) {
	switch s {
	case "blue":
		return Blue, nil
	case "orange":
		return Orange, nil
	default:
		return None, fmt.Errorf("unknown color %q", s)
	}
}

// index maps a side to its slot in per-side arrays.
func (c Color) index() int {
	if c != Blue && c != Orange {
		panic(fmt.Sprintf("color %d is not a side", c))
	}
	return int(c) - 1
}

type StateHash uint64

// Evaluates a non-terminal state from the perspective of the side to move.
// Positive favours the side to move. Implementations must be antisymmetric:
// swapping the two sides negates the score.
type Evaluate func(State) int
