package searcher

import (
	"morris/game"
	"time"
)

// Scores are from the side to move's perspective. Win dominates any heuristic
// score; a win found at ply p is worth Win - p so that quicker wins (and
// slower losses) are preferred.
const (
	Win      = 1_000_000
	Infinity = Win + 1
)

// MaxDepth bounds iterative deepening.
const MaxDepth = 64

const DefaultDuration = time.Second

// IsMateScore reports whether score proves a forced win or loss.
func IsMateScore(score int) bool {
	return score >= Win-MaxDepth || score <= -(Win-MaxDepth)
}

// terminalScore scores a finished game for the side to move at ply. The
// second result is false while the game goes on.
func terminalScore(state *game.State, ply int) (int, bool) {
	switch {
	case game.IsReduced(*state, state.Turn):
		return -(Win - ply), true
	case game.IsReduced(*state, state.Turn.Opponent()):
		return Win - ply, true
	default:
		return 0, false
	}
}
