package metrics

import (
	"connect4/game"
	"sync/atomic"
	"time"
)

type MoveMetric struct {
	Step     int
	Player   game.Marker
	Column   int
	Outcome  game.Outcome
	Duration time.Duration // Time the agent took to choose
}

type GameMetric struct {
	StartingPlayer game.Marker
	Outcome        game.Outcome
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Summary aggregates the games seen by a Collector.
type Summary struct {
	Games       int
	Moves       int
	PlayerAWins int
	PlayerBWins int
	Draws       int
	Invalid     int
	Aborted     int
	Duration    time.Duration
}

// Collector counts games across concurrently running workers.
type Collector interface {
	Start()
	AddGame(outcome game.Outcome, moves int)
	AddAborted()
	Complete() Summary
}

type collector struct {
	startTime   time.Time
	games       atomic.Int32
	moves       atomic.Int32
	playerAWins atomic.Int32
	playerBWins atomic.Int32
	draws       atomic.Int32
	invalid     atomic.Int32
	aborted     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddGame(outcome game.Outcome, moves int) {
	m.games.Add(1)
	m.moves.Add(int32(moves))
	switch outcome {
	case game.PlayerAWon:
		m.playerAWins.Add(1)
	case game.PlayerBWon:
		m.playerBWins.Add(1)
	case game.Draw:
		m.draws.Add(1)
	case game.InvalidMove:
		m.invalid.Add(1)
	}
}

func (m *collector) AddAborted() {
	m.aborted.Add(1)
}

func (m *collector) Complete() Summary {
	return Summary{
		Games:       int(m.games.Load()),
		Moves:       int(m.moves.Load()),
		PlayerAWins: int(m.playerAWins.Load()),
		PlayerBWins: int(m.playerBWins.Load()),
		Draws:       int(m.draws.Load()),
		Invalid:     int(m.invalid.Load()),
		Aborted:     int(m.aborted.Load()),
		Duration:    time.Since(m.startTime),
	}
}
