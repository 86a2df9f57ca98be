package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID       int
	Duration time.Duration
	MaxDepth int
	Advisor  bool
}

func (c AgentConfig) Name() string {
	return fmt.Sprintf("agent%d", c.ID)
}

type GameRecord struct {
	Agent1 int // AgentConfig.ID playing blue
	Agent2 int // AgentConfig.ID playing orange
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the CSV files of one run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "duration", "max_depth", "advisor"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Duration.String(),
			strconv.Itoa(config.MaxDepth),
			strconv.FormatBool(config.Advisor),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "winner", "reason", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Winner.String(),
			record.Reason,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "duration", "depth", "nodes", "score", "fallback"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Move,
			record.Duration.String(),
			strconv.Itoa(record.Depth),
			strconv.FormatInt(record.Nodes, 10),
			strconv.Itoa(record.Score),
			strconv.FormatBool(record.Fallback),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
