package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Agent kinds understood by the experiments package.
const (
	RandomAgent   = "random"
	ScriptedAgent = "scripted"
	WeightedAgent = "weighted"
)

type AgentConfig struct {
	ID      int       `yaml:"id"`
	Kind    string    `yaml:"kind"`
	Seed    uint64    `yaml:"seed,omitempty"`
	Columns []int     `yaml:"columns,omitempty"`
	Weights []float64 `yaml:"weights,omitempty"`
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing PlayerA
	Agent2 int // AgentConfig.ID playing PlayerB
	Score  int // Fitness of Agent1 for this game
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type FitnessRecord struct {
	Agent int // AgentConfig.ID
	Games int
	Score int
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>/ to hold one experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
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
	header := []string{"id", "kind", "seed", "columns", "weights"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		columns := make([]string, len(config.Columns))
		for i, c := range config.Columns {
			columns[i] = strconv.Itoa(c)
		}
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.FormatUint(config.Seed, 10),
			strings.Join(columns, " "),
			strconv.Itoa(len(config.Weights)),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "outcome", "total_moves", "score", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer.String(),
			record.Outcome.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Score),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "column", "outcome", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Column),
			record.Outcome.String(),
			record.Duration.String(),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteFitness(records []FitnessRecord) error {
	header := []string{"agent", "games", "score"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.Score),
		})
	}
	return w.write("fitness.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	err = writeCSV(f, header, rows)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func writeCSV(out io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)

	err := writer.Write(header)
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}
