package searcher

import (
	"morris/experiments/metrics"
	"morris/game"
	"morris/utils"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(s *Searcher)

// noMove matches no generated move, so ordering by it only sorts captures first.
var noMove = game.Move{From: game.NoPoint, To: game.NoPoint, Remove: game.NoPoint}

// Searcher picks moves with iterative-deepening negamax and alpha-beta
// pruning under a wall-clock budget. A Searcher runs one search at a time.
type Searcher struct {
	duration time.Duration
	maxDepth int
	evaluate game.Evaluate
	metrics  metrics.Collector
	now      func() time.Time

	deadline time.Time
	aborted  bool
}

func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth > 0 {
			s.maxDepth = min(depth, MaxDepth)
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(s *Searcher) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// WithClock replaces time.Now for deadline checks.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		duration: DefaultDuration,
		maxDepth: MaxDepth,
		evaluate: game.EvaluateDefault,
		metrics:  metrics.NewDummyCollector(),
		now:      time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// FindMove returns the best move of the deepest iteration that completed
// before the deadline. When none completed it returns the first legal move,
// or game.DefaultMove if there is no legal move at all.
func (s *Searcher) FindMove(state game.State) (game.Move, metrics.SearchMetric) {
	s.metrics.Start(s.maxDepth, s.duration)
	s.deadline = s.now().Add(s.duration)
	s.aborted = false

	legal := state.LegalMoves()
	if len(legal) == 0 {
		s.metrics.SetFallback()
		return game.DefaultMove, s.metrics.Complete()
	}

	moves := slices.Clone(legal)
	orderMoves(moves, noMove)

	var best game.Move
	completed := 0
	for depth := 1; depth <= s.maxDepth; depth++ {
		if s.expired() {
			break
		}
		move, score, ok := s.searchRoot(state, moves, depth)
		if !ok {
			log.Debug().Msgf("depth %d aborted at the deadline", depth)
			break
		}
		best = move
		completed = depth
		s.metrics.CompleteDepth(depth, score)
		orderMoves(moves, best)

		if IsMateScore(score) {
			break
		}
	}

	if completed == 0 {
		s.metrics.SetFallback()
		return legal[0], s.metrics.Complete()
	}
	return best, s.metrics.Complete()
}

// searchRoot searches every root move to depth. It reports false when the
// deadline cut the iteration short; the partial result must then be dropped.
func (s *Searcher) searchRoot(state game.State, moves []game.Move, depth int) (game.Move, int, bool) {
	alpha := -Infinity
	best := moves[0]
	for _, move := range moves {
		score := -s.negamax(state.Play(move), depth-1, 1, -Infinity, -alpha)
		if s.aborted {
			return best, alpha, false
		}
		// Strict comparison keeps the first of equally scored moves
		if score > alpha {
			alpha = score
			best = move
		}
	}
	return best, alpha, true
}

func (s *Searcher) negamax(state game.State, depth, ply, alpha, beta int) int {
	s.metrics.AddNode()

	if score, over := terminalScore(&state, ply); over {
		return score
	}
	if s.expired() || depth == 0 {
		if !game.HasLegalMove(state) {
			return -(Win - ply)
		}
		return s.evaluate(state)
	}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return -(Win - ply)
	}
	orderMoves(moves, noMove)

	best := -Infinity
	for _, move := range moves {
		score := -s.negamax(state.Play(move), depth-1, ply+1, -beta, -alpha)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta || s.aborted {
			break
		}
	}
	return best
}

func (s *Searcher) expired() bool {
	if !s.aborted && !s.now().Before(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// orderMoves puts first at the front when present, then capturing moves,
// keeping the generation order otherwise.
func orderMoves(moves []game.Move, first game.Move) {
	slices.SortStableFunc(moves, func(a, b game.Move) int {
		return rank(a) - rank(b)
	})
	if i := utils.FindIndex(moves, first); i > 0 {
		moveToFront(moves, i)
	}
}

func rank(m game.Move) int {
	if m.IsCapture() {
		return 0
	}
	return 1
}

func moveToFront(moves []game.Move, i int) {
	m := moves[i]
	copy(moves[1:i+1], moves[:i])
	moves[0] = m
}
