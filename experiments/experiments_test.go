package experiments

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		outcome game.Outcome
		moves   int
		want    int
	}{
		{"win", game.PlayerAWon, 7, 14 + 100},
		{"loss", game.PlayerBWon, 8, 16 - 10},
		{"invalid move", game.InvalidMove, 13, 26 - 70},
		{"draw", game.Draw, 42, 84},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Score(tt.outcome, tt.moves))
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tournament.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("fills defaults and round robin", func(t *testing.T) {
		path := writeConfig(t, `
name: smoke
agents:
  - id: 1
    kind: random
    seed: 5
  - id: 2
    kind: scripted
    columns: [3, 3, 4]
`)
		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, "smoke", cfg.Name)
		require.Equal(t, meta.GAMES, cfg.Games)
		require.Equal(t, meta.GO_ROUTINES, cfg.Goroutines)
		require.Equal(t, game.Rows, cfg.Rows)
		require.Equal(t, game.Columns, cfg.Columns)
		require.Equal(t, uint64(5), cfg.Agents[0].Seed)
		require.Equal(t, []int{3, 3, 4}, cfg.Agents[1].Columns)
		require.Equal(t, [][]int{{1, 2}, {2, 1}}, cfg.MatchUps, "Both seatings should be played")
	})

	t.Run("rejects unknown agent kinds", func(t *testing.T) {
		path := writeConfig(t, `
agents:
  - id: 1
    kind: minimax
  - id: 2
    kind: random
`)
		_, err := LoadConfig(path)
		require.ErrorContains(t, err, "unknown kind")
	})

	t.Run("rejects match-ups with unknown agents", func(t *testing.T) {
		path := writeConfig(t, `
agents:
  - id: 1
    kind: random
matchups:
  - [1, 9]
`)
		_, err := LoadConfig(path)
		require.ErrorContains(t, err, "unknown agent")
	})

	t.Run("rejects short weight vectors", func(t *testing.T) {
		path := writeConfig(t, `
agents:
  - id: 1
    kind: weighted
    weights: [0.5, 0.1]
  - id: 2
    kind: random
`)
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("example file", func(t *testing.T) {
		cfg, err := LoadConfig("tournament.example.yaml")

		require.NoError(t, err)
		require.Len(t, cfg.Agents, 2)
		require.Equal(t, [][]int{{1, 2}, {2, 1}}, cfg.MatchUps)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func scriptedConfig() Config {
	return Config{
		Name:       "scripted",
		Games:      3,
		Goroutines: 2,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: metrics.ScriptedAgent, Columns: []int{0, 0, 0, 0}},
			{ID: 2, Kind: metrics.ScriptedAgent, Columns: []int{1, 1, 1}},
		},
		MatchUps: [][]int{{1, 2}},
	}
}

func TestNewAgent(t *testing.T) {
	cfg := Config{}
	choices := func(a metrics.AgentConfig, gameID int) []int {
		t.Helper()
		ag, err := cfg.newAgent(a, gameID)
		require.NoError(t, err)
		view := game.New().View()
		out := make([]int, 50)
		for i := range out {
			out[i] = ag.FindMove(view)
		}
		return out
	}

	t.Run("same agent and game replays the same choices", func(t *testing.T) {
		a := metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent, Seed: 1}
		require.Equal(t, choices(a, 3), choices(a, 3))
	})

	t.Run("adjacent seeds and game ids diverge", func(t *testing.T) {
		first := choices(metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent, Seed: 1}, 2)
		second := choices(metrics.AgentConfig{ID: 2, Kind: metrics.RandomAgent, Seed: 2}, 1)
		require.NotEqual(t, first, second)
	})

	t.Run("same seed under different ids diverges", func(t *testing.T) {
		first := choices(metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent, Seed: 5}, 1)
		second := choices(metrics.AgentConfig{ID: 2, Kind: metrics.RandomAgent, Seed: 5}, 1)
		require.NotEqual(t, first, second)
	})

	t.Run("game seeds do not collide", func(t *testing.T) {
		seen := make(map[uint64]bool)
		for seed := uint64(0); seed < 10; seed++ {
			for id := 1; id <= 10; id++ {
				for gameID := 0; gameID < 10; gameID++ {
					s := gameSeed(seed, id, gameID)
					require.False(t, seen[s], "seed %d agent %d game %d", seed, id, gameID)
					seen[s] = true
				}
			}
		}
	})
}

func TestRunTournament(t *testing.T) {
	t.Run("scripted match-up is deterministic", func(t *testing.T) {
		results, err := RunTournament(context.Background(), scriptedConfig())

		require.NoError(t, err)
		require.Len(t, results.Games, 3)
		for i, g := range results.Games {
			require.Equal(t, i+1, g.ID, "Records should be ordered by game")
			require.Equal(t, game.PlayerAWon, g.Outcome)
			require.Equal(t, 7, g.TotalMoves)
			require.Equal(t, 114, g.Score)
		}
		require.Len(t, results.Moves, 21)
		require.Equal(t, []metrics.FitnessRecord{{Agent: 1, Games: 3, Score: 342}}, results.Fitness)
		require.Equal(t, 3, results.Summary.PlayerAWins)
	})

	t.Run("random round robin", func(t *testing.T) {
		cfg := Config{
			Games:      20,
			Goroutines: 4,
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: metrics.RandomAgent, Seed: 1},
				{ID: 2, Kind: metrics.RandomAgent, Seed: 2},
				{ID: 3, Kind: metrics.WeightedAgent, Weights: make([]float64, 7*6*7+7)},
			},
		}

		results, err := RunTournament(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, results.Games, 6*20)
		require.Len(t, results.Fitness, 3)
		require.Equal(t, 120, results.Summary.Games)
		for _, f := range results.Fitness {
			require.Equal(t, 40, f.Games, "Each agent plays PlayerA in two match-ups")
		}
		for _, g := range results.Games {
			require.Equal(t, Score(g.Outcome, g.TotalMoves), g.Score)
		}
	})

	t.Run("random games are reproducible", func(t *testing.T) {
		cfg := Config{
			Games:      10,
			Goroutines: 3,
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: metrics.RandomAgent, Seed: 11},
				{ID: 2, Kind: metrics.RandomAgent, Seed: 22},
			},
		}

		first, err := RunTournament(context.Background(), cfg)
		require.NoError(t, err)
		second, err := RunTournament(context.Background(), cfg)
		require.NoError(t, err)

		require.Equal(t, first.Fitness, second.Fitness)
	})

	t.Run("contract violation aborts the game", func(t *testing.T) {
		cfg := scriptedConfig()
		cfg.Agents[1].Columns = []int{-1}

		results, err := RunTournament(context.Background(), cfg)

		require.NoError(t, err)
		require.Equal(t, 3, results.Summary.Aborted)
		require.Equal(t, 0, results.Summary.Games)
		require.Empty(t, results.Games)
		require.Empty(t, results.Moves)
		require.Empty(t, results.Fitness)
	})

	t.Run("aborted games are left out of fitness", func(t *testing.T) {
		cfg := scriptedConfig()
		cfg.Agents = append(cfg.Agents, metrics.AgentConfig{ID: 3, Kind: metrics.ScriptedAgent, Columns: []int{7}})
		cfg.MatchUps = [][]int{{1, 2}, {1, 3}}

		results, err := RunTournament(context.Background(), cfg)

		require.NoError(t, err)
		require.Equal(t, 3, results.Summary.Aborted)
		require.Equal(t, 3, results.Summary.Games)
		require.Len(t, results.Games, 3)
		for _, g := range results.Games {
			require.Equal(t, 2, g.Agent2)
		}
		require.Equal(t, []metrics.FitnessRecord{{Agent: 1, Games: 3, Score: 3 * 114}}, results.Fitness)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := RunTournament(ctx, scriptedConfig())

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRun(t *testing.T) {
	root := t.TempDir()

	dir, err := Run(context.Background(), scriptedConfig(), root)

	require.NoError(t, err)
	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "fitness.csv"} {
		require.FileExists(t, filepath.Join(dir, name))
	}
	rel, err := filepath.Rel(root, dir)
	require.NoError(t, err)
	require.Equal(t, "scripted", filepath.Dir(rel))
}
