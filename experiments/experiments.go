package experiments

import (
	"context"
	"fmt"
	"morris/agent"
	"morris/engine"
	"morris/experiments/metrics"
	"morris/game"
	"morris/meta"
	"morris/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Experiment pairs agent configurations. Each match up is played
// SelfPlayConfig.Games times with colors alternating between games.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
}

// AgentFactory builds a fresh agent for one game. Agents are not shared
// between concurrently running games.
type AgentFactory func(config metrics.AgentConfig) agent.Agent

type Result struct {
	Dir         string // Where the CSV files were written, empty if not stored
	GameRecords []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Wins counts the games won by each agent config ID.
func (r Result) Wins() map[int]int {
	wins := make(map[int]int)
	for _, record := range r.GameRecords {
		switch record.Winner {
		case game.Blue:
			wins[record.Agent1]++
		case game.Orange:
			wins[record.Agent2]++
		}
	}
	return wins
}

// SearchAgents builds alpha-beta agents from a config, weighing positions with weights.
func SearchAgents(weights game.Weights) AgentFactory {
	return func(config metrics.AgentConfig) agent.Agent {
		return agent.NewSearchAgent(searcher.NewSearcher(
			searcher.WithDuration(config.Duration),
			searcher.WithMaxDepth(config.MaxDepth),
			searcher.WithEvaluationFn(weights.Evaluator()),
			searcher.WithMetrics(),
		))
	}
}

// DepthExperiment pits agents of increasing depth against a shallow baseline
// under the same time budget.
func DepthExperiment(budget time.Duration, depths []int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Duration: budget, MaxDepth: 1}
	experiment := Experiment{Name: "depth", Configs: []metrics.AgentConfig{baseline}}
	for i, depth := range depths {
		config := metrics.AgentConfig{ID: i + 1, Duration: budget, MaxDepth: depth}
		experiment.Configs = append(experiment.Configs, config)
		experiment.MatchUps = append(experiment.MatchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return experiment
}

// VersusExperiment plays one configuration against a baseline.
func VersusExperiment(config, baseline metrics.AgentConfig) Experiment {
	return Experiment{
		Name:     "versus",
		Configs:  []metrics.AgentConfig{baseline, config},
		MatchUps: [][2]metrics.AgentConfig{{baseline, config}},
	}
}

// Run plays every game of experiment, settings.Parallel at a time, and stores
// the records under settings.OutDir unless it is empty.
func Run(ctx context.Context, settings meta.SelfPlayConfig, experiment Experiment,
	newAgent AgentFactory, registry *metrics.Registry) (Result, error) {

	total := len(experiment.MatchUps) * settings.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	log.Info().Msgf("starting %s experiment: %d games, %d at a time...", experiment.Name, total, settings.Parallel)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(settings.Parallel, 1))

	for mi, matchUp := range experiment.MatchUps {
		for i := 0; i < settings.Games; i++ {
			mi, i := mi, i // per-iteration copies (go < 1.22 loop semantics)
			index := mi*settings.Games + i
			blue, orange := matchUp[0], matchUp[1]
			if i%2 == 1 {
				blue, orange = orange, blue
			}

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				e := engine.LocalEngine(
					[2]agent.Agent{newAgent(blue), newAgent(orange)},
					engine.WithNames(blue.Name(), orange.Name()),
					engine.WithMaxTurns(settings.MaxTurns),
					engine.WithOpeningPlies(settings.OpeningPlies, settings.Seed+uint64(index)),
				)
				winner, gameMetric, moveMetrics := e.Run(ctx)
				if err := ctx.Err(); err != nil {
					return err
				}

				gameRecords[index] = metrics.GameRecord{
					Agent1:     blue.ID,
					Agent2:     orange.ID,
					GameMetric: gameMetric,
				}
				records := make([]metrics.MoveRecord, 0, len(moveMetrics))
				for _, mm := range moveMetrics {
					records = append(records, metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
					registry.ObserveSearch(agentName(mm.Player, blue, orange), mm.SearchMetric)
				}
				moveRecords[index] = records
				registry.ObserveGame(gameMetric)

				log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %v (%s)",
					mi+1, len(experiment.MatchUps), i+1, settings.Games, winner, gameMetric.Reason)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("%s experiment: %w", experiment.Name, err)
	}

	result := Result{GameRecords: gameRecords}
	for _, records := range moveRecords {
		result.MoveRecords = append(result.MoveRecords, records...)
	}
	log.Info().Msgf("completed %s experiment", experiment.Name)

	if settings.OutDir == "" {
		return result, nil
	}
	dir, err := store(settings.OutDir, experiment, result)
	if err != nil {
		return result, err
	}
	result.Dir = dir
	return result, nil
}

func store(outDir string, experiment Experiment, result Result) (string, error) {
	writer, err := metrics.NewWriter(outDir, experiment.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(experiment.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.GameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored experiment records in %s", writer.Dir())
	return writer.Dir(), nil
}

func agentName(player game.Color, blue, orange metrics.AgentConfig) string {
	if player == game.Orange {
		return orange.Name()
	}
	return blue.Name()
}
