package engine

import "connect4/experiments/metrics"

type Engine interface {
	// Run plays one game until a terminal outcome and reports what happened.
	// A non-nil error means a move source broke the board's contract.
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
