package game

// Phase is derived from a side's stones, never stored.
type Phase int

const (
	PlacementPhase Phase = iota
	MovementPhase
	FlyingPhase
)

func (p Phase) String() string {
	switch p {
	case PlacementPhase:
		return "placement"
	case MovementPhase:
		return "movement"
	case FlyingPhase:
		return "flying"
	default:
		return "unknown"
	}
}

// IsInMill reports whether p is part of a complete line of c stones. Only the
// two lines through p are checked.
func IsInMill(board *Board, p Point, c Color) bool {
	for _, mill := range millsByPoint[p] {
		if mill.IsFormedBy(board, c) {
			return true
		}
	}
	return false
}

// Removable lists the stones of c that may be captured: those outside mills,
// or every stone of c when all of them sit in mills.
func Removable(board *Board, c Color) []Point {
	var free, all []Point
	for p, occupant := range board {
		if occupant != c {
			continue
		}
		all = append(all, Point(p))
		if !IsInMill(board, Point(p), c) {
			free = append(free, Point(p))
		}
	}
	if len(free) == 0 {
		return all
	}
	return free
}

// CanRemove checks a single capture target against the same rule as Removable.
func CanRemove(board *Board, p Point, c Color) bool {
	if !p.Valid() || board[p] != c {
		return false
	}
	if !IsInMill(board, p, c) {
		return true
	}
	for q, occupant := range board {
		if occupant == c && !IsInMill(board, Point(q), c) {
			return false
		}
	}
	return true
}

// PhaseOf derives the phase of side c. A side flies once its hand is empty
// and exactly three stones remain.
func PhaseOf(s State, c Color) Phase {
	if s.Hand(c) > 0 {
		return PlacementPhase
	}
	if s.OnBoard(c) == 3 {
		return FlyingPhase
	}
	return MovementPhase
}

func CanFly(s State, c Color) bool {
	return PhaseOf(s, c) == FlyingPhase
}

// IsReduced reports whether c has lost on material: no stones in hand and at
// most two on the board.
func IsReduced(s State, c Color) bool {
	return s.Hand(c) == 0 && s.OnBoard(c) <= 2
}

// IsTerminal reports whether the game is over: a side is reduced, or the side
// to move has no legal move.
func IsTerminal(s State) bool {
	if IsReduced(s, Blue) || IsReduced(s, Orange) {
		return true
	}
	return !HasLegalMove(s)
}

// Winner returns the winning side of a terminal state, or None while play goes on.
func Winner(s State) Color {
	switch {
	case IsReduced(s, s.Turn):
		return s.Turn.Opponent()
	case IsReduced(s, s.Turn.Opponent()):
		return s.Turn
	case !HasLegalMove(s):
		return s.Turn.Opponent()
	default:
		return None
	}
}
