package agent

import (
	"context"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
)

type Agent interface {
	// FindMove returns a move for the side to move in state and performance
	// metrics (if collected). It always returns a move, falling back to
	// game.DefaultMove when the side to move is stuck.
	FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric)
}

type searchAgent struct {
	searcher *searcher.Searcher
}

// NewSearchAgent returns an agent backed by alpha-beta search.
func NewSearchAgent(s *searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

// FindMove ignores ctx: the search is bounded by its own time budget.
func (a searchAgent) FindMove(_ context.Context, state game.State) (game.Move, metrics.SearchMetric) {
	return a.searcher.FindMove(state)
}
