package engine

import (
	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// LocalEngine drives one game between two in-process agents. Agents[0] plays
// PlayerA and moves first.
type LocalEngine struct {
	Board             *game.Board
	Agents            []agent.Agent
	continueOnInvalid bool
	maxMoves          int
}

// WithContinueOnInvalid keeps the game going after a full-column attempt
// instead of ending it with InvalidMove.
func WithContinueOnInvalid() Option {
	return func(e *LocalEngine) {
		e.continueOnInvalid = true
	}
}

// WithBoard plays on b instead of a standard board. b should be fresh.
func WithBoard(b *game.Board) Option {
	return func(e *LocalEngine) {
		if b != nil {
			e.Board = b
		}
	}
}

func NewLocalEngine(agents []agent.Agent, options ...Option) *LocalEngine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}

	e := &LocalEngine{
		Board:  game.New(),
		Agents: agents,
	}
	for _, option := range options {
		option(e)
	}
	// The call after the last cell is filled answers Draw
	e.maxMoves = e.Board.Rows()*e.Board.Columns() + 1
	return e
}

// Run executes the game loop until a terminal outcome.
func (e *LocalEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Turn(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%s is starting", gameMetric.StartingPlayer)

	for step := 1; step <= e.maxMoves; step++ {
		player := e.Board.Turn()
		agentIndex := int(player) - 1

		// Agents get a snapshot so nothing they keep can see later moves
		view := e.Board.Copy().View()
		start := time.Now()
		column := e.Agents[agentIndex].FindMove(view)
		elapsed := time.Since(start)

		outcome, err := e.Board.DropPiece(player, column)
		if err != nil {
			return e.finish(gameMetric, game.Continued), moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:     step,
			Player:   player,
			Column:   column,
			Outcome:  outcome,
			Duration: elapsed,
		})
		log.Debug().Msgf("step %d: %s => %s", step, e.Board.LastMove(), outcome)

		if outcome.IsTerminal() || (outcome == game.InvalidMove && !e.continueOnInvalid) {
			log.Debug().Msgf("game over after %d moves: %s\n%s", e.Board.TotalMoves(), outcome, e.Board)
			return e.finish(gameMetric, outcome), moveMetrics, nil
		}
	}

	return e.finish(gameMetric, game.Continued), moveMetrics, fmt.Errorf("no terminal outcome after %d moves", e.maxMoves)
}

func (e *LocalEngine) finish(gameMetric metrics.GameMetric, outcome game.Outcome) metrics.GameMetric {
	gameMetric.Outcome = outcome
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.Board.TotalMoves()
	return gameMetric
}
