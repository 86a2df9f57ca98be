package experiments

import (
	"morris/experiments/metrics"
	"time"
)

// ThroughputExperiment plays each time budget against itself so that both
// sides search equally deep. The move records show how many nodes and
// completed depths each budget buys.
func ThroughputExperiment(maxDepth int, budgets []time.Duration) Experiment {
	experiment := Experiment{Name: "throughput"}
	for i, budget := range budgets {
		config := metrics.AgentConfig{ID: i + 1, Duration: budget, MaxDepth: maxDepth}
		experiment.Configs = append(experiment.Configs, config)
		// Same config for both players for similar playing strength and game length
		experiment.MatchUps = append(experiment.MatchUps, [2]metrics.AgentConfig{config, config})
	}
	return experiment
}

// NodesPerSecond sums the searched nodes and search time of every move
// played by config id.
func (r Result) NodesPerSecond(id int) float64 {
	var nodes int64
	var elapsed time.Duration
	players := make(map[string]int, len(r.GameRecords)*2)
	for _, record := range r.GameRecords {
		players[record.ID+"/blue"] = record.Agent1
		players[record.ID+"/orange"] = record.Agent2
	}
	for _, record := range r.MoveRecords {
		if players[record.Game+"/"+record.Player.String()] != id {
			continue
		}
		nodes += record.Nodes
		elapsed += record.Duration
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(nodes) / elapsed.Seconds()
}
