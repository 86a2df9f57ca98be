package main

import (
	"morris/meta"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSelectExperiment(t *testing.T) {
	config := meta.SearchConfig{TimeBudget: 80 * time.Millisecond, MaxDepth: 8}

	t.Run("versus", func(t *testing.T) {
		experiment, err := selectExperiment("versus", config, 2)
		require.NoError(t, err)
		require.Len(t, experiment.MatchUps, 1)
		require.Equal(t, 2, experiment.MatchUps[0][0].MaxDepth)
		require.Equal(t, 8, experiment.MatchUps[0][1].MaxDepth)
	})

	t.Run("depth", func(t *testing.T) {
		experiment, err := selectExperiment("depth", config, 2)
		require.NoError(t, err)
		require.Len(t, experiment.MatchUps, 3)
		require.Equal(t, 8, experiment.MatchUps[2][1].MaxDepth)
	})

	t.Run("throughput", func(t *testing.T) {
		experiment, err := selectExperiment("throughput", config, 2)
		require.NoError(t, err)
		require.Len(t, experiment.Configs, 4)
		require.Equal(t, 10*time.Millisecond, experiment.Configs[0].Duration)
		require.Equal(t, 80*time.Millisecond, experiment.Configs[3].Duration)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := selectExperiment("tournament", config, 2)
		require.Error(t, err)
	})
}
