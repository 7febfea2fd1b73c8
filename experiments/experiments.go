package experiments

import (
	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Score rates one finished game for the agent that played PlayerA. Longer
// games earn more, a win earns most and an invalid move costs more than a
// loss.
func Score(outcome game.Outcome, totalMoves int) int {
	score := meta.MOVE_REWARD * totalMoves
	switch outcome {
	case game.PlayerAWon:
		score += meta.WIN_REWARD
	case game.PlayerBWon:
		score += meta.LOSS_PENALTY
	case game.InvalidMove:
		score += meta.INVALID_PENALTY
	}
	return score
}

type Results struct {
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Fitness []metrics.FitnessRecord // Sorted by agent ID
	Summary metrics.Summary
}

type task struct {
	id     int
	agent1 metrics.AgentConfig
	agent2 metrics.AgentConfig
}

type played struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
	err   error
}

// RunTournament plays every match-up cfg.Games times. Each game runs on its
// own board and agents, so games are spread over cfg.Goroutines workers with
// nothing shared but the result slots and the collector.
func RunTournament(ctx context.Context, cfg Config) (*Results, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	numGames := len(cfg.MatchUps) * cfg.Games
	tasks := make(chan task, numGames)
	count := 0
	for _, matchup := range cfg.MatchUps {
		for i := 0; i < cfg.Games; i++ {
			count++
			tasks <- task{id: count, agent1: cfg.agent(matchup[0]), agent2: cfg.agent(matchup[1])}
		}
	}
	close(tasks)

	log.Info().Msgf("starting %s tournament: %d match-ups, %d games on %d goroutines", cfg.Name, len(cfg.MatchUps), numGames, cfg.Goroutines)

	collector := metrics.NewCollector()
	collector.Start()
	results := make([]played, numGames)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tasks {
				if ctx.Err() != nil {
					continue // Drain remaining tasks
				}
				p := playGame(cfg, t)
				if p.err != nil {
					collector.AddAborted()
				} else {
					collector.AddGame(p.game.Outcome, p.game.TotalMoves)
				}
				results[t.id-1] = p
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tournament %s interrupted: %w", cfg.Name, err)
	}

	out := &Results{Summary: collector.Complete()}
	fitness := make(map[int]*metrics.FitnessRecord)
	for _, p := range results {
		if p.err != nil {
			continue // Aborted games carry no score
		}
		out.Games = append(out.Games, p.game)
		out.Moves = append(out.Moves, p.moves...)

		f, ok := fitness[p.game.Agent1]
		if !ok {
			f = &metrics.FitnessRecord{Agent: p.game.Agent1}
			fitness[p.game.Agent1] = f
		}
		f.Games++
		f.Score += p.game.Score
	}
	for _, f := range fitness {
		out.Fitness = append(out.Fitness, *f)
	}
	sort.Slice(out.Fitness, func(i, j int) bool { return out.Fitness[i].Agent < out.Fitness[j].Agent })

	s := out.Summary
	log.Info().Msgf("completed %s tournament: %d games, %d moves, A won %d, B won %d, %d draws, %d invalid in %s",
		cfg.Name, s.Games, s.Moves, s.PlayerAWins, s.PlayerBWins, s.Draws, s.Invalid, s.Duration)
	if s.Aborted > 0 {
		log.Warn().Msgf("%s tournament: %d of %d games aborted", cfg.Name, s.Aborted, numGames)
	}

	return out, nil
}

func playGame(cfg Config, t task) played {
	record := metrics.GameRecord{ID: t.id, Agent1: t.agent1.ID, Agent2: t.agent2.ID}

	a1, err := cfg.newAgent(t.agent1, t.id)
	if err != nil {
		return played{game: record, err: err}
	}
	a2, err := cfg.newAgent(t.agent2, t.id)
	if err != nil {
		return played{game: record, err: err}
	}
	board, err := game.NewSized(cfg.Rows, cfg.Columns)
	if err != nil {
		return played{game: record, err: err}
	}

	options := []engine.Option{engine.WithBoard(board)}
	if cfg.ContinueOnInvalid {
		options = append(options, engine.WithContinueOnInvalid())
	}
	e := engine.NewLocalEngine([]agent.Agent{a1, a2}, options...)

	gameMetric, moveMetrics, err := e.Run()
	record.GameMetric = gameMetric
	if err != nil {
		log.Warn().Err(err).Msgf("game %d between agent %d and agent %d aborted", t.id, t.agent1.ID, t.agent2.ID)
		return played{game: record, err: err}
	}
	record.Score = Score(gameMetric.Outcome, gameMetric.TotalMoves)

	moves := make([]metrics.MoveRecord, len(moveMetrics))
	for i, mm := range moveMetrics {
		moves[i] = metrics.MoveRecord{Game: t.id, MoveMetric: mm}
	}
	log.Debug().Msgf("game %d: agent %d vs agent %d => %s after %d moves", t.id, t.agent1.ID, t.agent2.ID, gameMetric.Outcome, gameMetric.TotalMoves)

	return played{game: record, moves: moves}
}

// Run plays the tournament described by cfg and stores agent configs, game
// records, move records and fitness as CSV under root. It returns the
// directory the files were written to.
func Run(ctx context.Context, cfg Config, root string) (string, error) {
	results, err := RunTournament(ctx, cfg)
	if err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(root, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(cfg.Agents)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(results.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(results.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	err = writer.WriteFitness(results.Fitness)
	if err != nil {
		return "", fmt.Errorf("failed to write fitness: %w", err)
	}
	log.Info().Msgf("stored fitness for %d agents", len(results.Fitness))

	return writer.Dir(), nil
}
