// meta/meta.go
package meta

// GO_ROUTINES defines the number of games played in parallel.
const GO_ROUTINES = 8

// GAMES defines the number of games per match-up.
const GAMES = 50

// OUTPUT_DIR defines where experiment results are written.
const OUTPUT_DIR = "results"

// Fitness rewards, from the first player's point of view.
const (
	MOVE_REWARD     = 2
	WIN_REWARD      = 100
	LOSS_PENALTY    = -10
	INVALID_PENALTY = -70
)
