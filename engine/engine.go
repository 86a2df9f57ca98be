package engine

import (
	"context"
	"morris/experiments/metrics"
	"morris/game"
)

type Engine interface {
	// Run plays a game till there's a winner, a draw or the context is done
	Run(ctx context.Context) (winner game.Color, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
