package engine

import (
	"context"
	"morris/agent"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubbornAgent always answers with a slide, which is illegal during placement.
type stubbornAgent struct{}

func (stubbornAgent) FindMove(context.Context, game.State) (game.Move, metrics.SearchMetric) {
	return game.Slide(game.A1, game.A4), metrics.SearchMetric{}
}

func shallowAgent() agent.Agent {
	return agent.NewSearchAgent(searcher.NewSearcher(
		searcher.WithMaxDepth(1),
		searcher.WithDuration(time.Minute),
		searcher.WithMetrics(),
	))
}

func TestLocalEngine(t *testing.T) {
	t.Run("plays a full game between search agents", func(t *testing.T) {
		e := LocalEngine([2]agent.Agent{shallowAgent(), shallowAgent()}, WithMaxTurns(40), WithNames("a", "b"))

		winner, gameMetric, moveMetrics := e.Run(context.Background())

		require.Equal(t, gameMetric.Winner, winner)
		require.NotEqual(t, "ongoing", gameMetric.Reason)
		require.LessOrEqual(t, gameMetric.TotalMoves, 40)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.NotEmpty(t, gameMetric.ID)
		require.Equal(t, "a", gameMetric.Blue)
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			if i%2 == 0 {
				require.Equal(t, game.Blue, m.Player)
			} else {
				require.Equal(t, game.Orange, m.Player)
			}
			require.Equal(t, 1, m.Depth)
		}
	})

	t.Run("replaces illegal agent moves with the first legal move", func(t *testing.T) {
		e := LocalEngine([2]agent.Agent{stubbornAgent{}, stubbornAgent{}}, WithMaxTurns(10))

		winner, gameMetric, moveMetrics := e.Run(context.Background())

		require.Equal(t, game.None, winner)
		require.Equal(t, "turn limit", gameMetric.Reason)
		require.Len(t, moveMetrics, 10)
		require.Equal(t, "h1 a1 r0", moveMetrics[0].Move)
		require.Equal(t, "h2 a4 r0", moveMetrics[1].Move)
		for _, m := range moveMetrics {
			require.True(t, m.Fallback)
		}
	})

	t.Run("seeded openings are reproducible", func(t *testing.T) {
		run := func() []metrics.MoveMetric {
			e := LocalEngine([2]agent.Agent{stubbornAgent{}, stubbornAgent{}}, WithMaxTurns(6), WithOpeningPlies(4, 7))
			_, _, moveMetrics := e.Run(context.Background())
			return moveMetrics
		}

		first, second := run(), run()

		require.Len(t, first, 6)
		require.Equal(t, first, second)
		for _, m := range first[:4] {
			require.False(t, m.Fallback, "opening plies are not searched")
		}
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := LocalEngine([2]agent.Agent{shallowAgent(), shallowAgent()})

		winner, gameMetric, moveMetrics := e.Run(ctx)

		require.Equal(t, game.None, winner)
		require.Equal(t, "cancelled", gameMetric.Reason)
		require.Empty(t, moveMetrics)
	})

	t.Run("requires two agents", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine([2]agent.Agent{shallowAgent(), nil}) })
	})
}
