package metrics

import (
	"encoding/csv"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"morris/game"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(8, time.Second)
	c.AddNode()
	c.AddNode()
	c.CompleteDepth(1, 12)
	c.AddNode()
	c.CompleteDepth(2, -3)

	m := c.Complete()

	require.Equal(t, 8, m.MaxDepth)
	require.Equal(t, time.Second, m.Budget)
	require.Equal(t, 2, m.Depth)
	require.Equal(t, -3, m.Score)
	require.EqualValues(t, 3, m.Nodes)
	require.False(t, m.Fallback)

	t.Run("start resets the previous search", func(t *testing.T) {
		c.SetFallback()
		c.Start(4, time.Millisecond)

		m := c.Complete()
		require.Zero(t, m.Nodes)
		require.Zero(t, m.Depth)
		require.False(t, m.Fallback)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		d := NewDummyCollector()
		d.Start(8, time.Second)
		d.AddNode()
		d.CompleteDepth(3, 10)
		require.Equal(t, SearchMetric{}, d.Complete())
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.ObserveSearch("search", SearchMetric{Nodes: 40, Depth: 3, Duration: 20 * time.Millisecond})
	r.ObserveSearch("search", SearchMetric{Nodes: 2, Fallback: true})
	r.ObserveGame(GameMetric{Winner: game.Blue, Reason: "reduced"})
	r.ObserveIgnoredLine("malformed")
	r.ObserveIgnoredLine("malformed")

	require.Equal(t, 1.0, testutil.ToFloat64(r.moves.WithLabelValues("search", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.moves.WithLabelValues("search", "true")))
	require.Equal(t, 42.0, testutil.ToFloat64(r.nodes))
	require.Equal(t, 1.0, testutil.ToFloat64(r.games.WithLabelValues("blue", "reduced")))
	require.Equal(t, 2.0, testutil.ToFloat64(r.ignoredLines.WithLabelValues("malformed")))

	t.Run("handler exposes the metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "morris_search_nodes_total 42")
	})

	t.Run("nil registry is a no-op", func(t *testing.T) {
		var nilRegistry *Registry
		require.NotPanics(t, func() {
			nilRegistry.ObserveSearch("search", SearchMetric{})
			nilRegistry.ObserveGame(GameMetric{})
			nilRegistry.ObserveIgnoredLine("illegal")
		})
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "selfplay")
	require.NoError(t, err)

	err = w.WriteAgentConfigs([]AgentConfig{{ID: 1, Duration: time.Second, MaxDepth: 6}})
	require.NoError(t, err)
	err = w.WriteGameRecords([]GameRecord{{
		Agent1: 1,
		Agent2: 2,
		GameMetric: GameMetric{
			ID:         "game-1",
			Winner:     game.Orange,
			Reason:     "blocked",
			TotalMoves: 41,
		},
	}})
	require.NoError(t, err)
	err = w.WriteMoveRecords([]MoveRecord{{
		Game: "game-1",
		MoveMetric: MoveMetric{
			Step:         1,
			Player:       game.Blue,
			Move:         "h1 d2 r0",
			SearchMetric: SearchMetric{Depth: 4, Nodes: 900},
		},
	}})
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{
		{"id", "duration", "max_depth", "advisor"},
		{"1", "1s", "6", "false"},
	}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{"game-1", "1", "2", "orange", "blocked"}, games[1][:5])
	require.Equal(t, "41", games[1][8])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, "h1 d2 r0", moves[1][3])
	require.Equal(t, "900", moves[1][6])
	require.True(t, strings.HasSuffix(filepath.Dir(w.Dir()), "selfplay"))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
