package engine

import (
	"context"
	"morris/agent"
	"morris/communication"
	"morris/experiments/metrics"
	"morris/game"
	"morris/gamemaster"
	"morris/meta"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *localEngine)

// WithOpeningPlies plays the first n plies at random, drawn from a generator
// seeded with seed, so that repeated games between the same agents differ.
func WithOpeningPlies(n int, seed uint64) Option {
	return func(e *localEngine) {
		if n > 0 {
			e.openingPlies = n
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func WithMaxTurns(n int) Option {
	return func(e *localEngine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithNames labels the agents in game metrics.
func WithNames(blue, orange string) Option {
	return func(e *localEngine) {
		e.names = [2]string{blue, orange}
	}
}

type localEngine struct {
	agents       [2]agent.Agent // Blue, Orange
	names        [2]string
	openingPlies int
	rng          *rand.Rand
	maxTurns     int
}

// LocalEngine plays agents[0] as blue against agents[1] as orange in process.
func LocalEngine(agents [2]agent.Agent, options ...Option) Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	e := &localEngine{ // Default values
		agents:   agents,
		names:    [2]string{"blue", "orange"},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *localEngine) Run(ctx context.Context) (game.Color, metrics.GameMetric, []metrics.MoveMetric) {
	referee := gamemaster.NewReferee(
		gamemaster.WithMaxTurns(e.maxTurns),
		gamemaster.WithRepetitionLimit(meta.REPETITIONS),
	)
	gameMetric := metrics.GameMetric{
		ID:        uuid.NewString(),
		Blue:      e.names[0],
		Orange:    e.names[1],
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	for step := 1; !referee.IsOver() && ctx.Err() == nil; step++ {
		state := referee.State()
		player := state.Turn

		var move game.Move
		var searchMetric metrics.SearchMetric
		if step <= e.openingPlies {
			moves := state.LegalMoves()
			move = moves[e.rng.Intn(len(moves))]
		} else {
			move, searchMetric = e.agents[agentIndex(player)].FindMove(ctx, state)
		}

		if err := referee.Play(move); err != nil {
			log.Warn().Err(err).Msgf("%v agent returned an illegal move, playing the first legal move", player)
			move = state.LegalMoves()[0]
			searchMetric.Fallback = true
			if err := referee.Play(move); err != nil {
				panic(err)
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         communication.FormatMove(move, player),
			SearchMetric: searchMetric,
		})
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = referee.Turns()
	gameMetric.Winner = referee.Winner()
	gameMetric.Reason = referee.Reason().String()
	if !referee.IsOver() {
		gameMetric.Reason = "cancelled"
	}

	log.Debug().Msgf("game %s over after %d moves: winner=%v reason=%s",
		gameMetric.ID, gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Reason)

	return gameMetric.Winner, gameMetric, moveMetrics
}

func agentIndex(c game.Color) int {
	if c == game.Orange {
		return 1
	}
	return 0
}
