package experiments

import (
	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Name              string                `yaml:"name"`
	Games             int                   `yaml:"games"`      // Per match-up
	Goroutines        int                   `yaml:"goroutines"` // Games played in parallel
	Rows              int                   `yaml:"rows"`
	Columns           int                   `yaml:"columns"`
	ContinueOnInvalid bool                  `yaml:"continue_on_invalid"`
	Agents            []metrics.AgentConfig `yaml:"agents"`
	MatchUps          [][]int               `yaml:"matchups"` // Pairs of agent IDs, first plays PlayerA
}

// LoadConfig reads a YAML tournament description and fills in defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "tournament"
	}
	if c.Games <= 0 {
		c.Games = meta.GAMES
	}
	if c.Goroutines <= 0 {
		c.Goroutines = meta.GO_ROUTINES
	}
	if c.Rows <= 0 {
		c.Rows = game.Rows
	}
	if c.Columns <= 0 {
		c.Columns = game.Columns
	}
	if len(c.MatchUps) == 0 {
		// Round robin, both seatings
		for _, a := range c.Agents {
			for _, b := range c.Agents {
				if a.ID != b.ID {
					c.MatchUps = append(c.MatchUps, []int{a.ID, b.ID})
				}
			}
		}
	}
}

func (c Config) Validate() error {
	if c.Games <= 0 || c.Goroutines <= 0 {
		return fmt.Errorf("games and goroutines must be positive, got %d and %d", c.Games, c.Goroutines)
	}
	if _, err := game.NewSized(c.Rows, c.Columns); err != nil {
		return err
	}

	seen := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if seen[a.ID] {
			return fmt.Errorf("duplicate agent id %d", a.ID)
		}
		seen[a.ID] = true
		// Building once catches bad kinds and weight vectors up front
		if _, err := c.newAgent(a, 0); err != nil {
			return err
		}
	}
	if len(c.MatchUps) == 0 {
		return fmt.Errorf("no match-ups to play")
	}
	for _, m := range c.MatchUps {
		if len(m) != 2 {
			return fmt.Errorf("match-up %v must name exactly two agents", m)
		}
		if !seen[m[0]] || !seen[m[1]] {
			return fmt.Errorf("match-up %v references an unknown agent", m)
		}
	}
	return nil
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, a := range c.Agents {
		if a.ID == id {
			return a
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}

// newAgent builds a fresh agent for one game. Random agents are reseeded per
// game so that repeated games differ yet stay reproducible.
func (c Config) newAgent(a metrics.AgentConfig, gameID int) (agent.Agent, error) {
	switch a.Kind {
	case metrics.RandomAgent:
		return agent.NewRandomAgent(gameSeed(a.Seed, a.ID, gameID)), nil
	case metrics.ScriptedAgent:
		return agent.NewScriptedAgent(a.Columns...), nil
	case metrics.WeightedAgent:
		w, err := agent.NewWeightedAgent(c.Rows, c.Columns, a.Weights)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", a.ID, err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("agent %d: unknown kind %q", a.ID, a.Kind)
	}
}

// gameSeed mixes an agent's seed with its ID and the game ID so that no two
// (agent, game) pairs share a random stream by accident.
func gameSeed(seed uint64, agentID, gameID int) uint64 {
	x := splitmix64(seed)
	for _, v := range []uint64{uint64(agentID), uint64(gameID)} {
		x = splitmix64(x ^ v)
	}
	return x
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
