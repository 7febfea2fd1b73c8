package agent

import "connect4/game"

type Agent interface {
	// FindMove returns the column to drop into for the player whose turn it is
	FindMove(view game.View) int
}

// firstLegal is the fallback for agents that have nothing better to offer.
// It returns 0 on a full board, where the engine answers Draw regardless.
func firstLegal(view game.View) int {
	columns := view.LegalColumns()
	if len(columns) == 0 {
		return 0
	}
	return columns[0]
}
