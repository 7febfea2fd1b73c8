package agent

import "connect4/game"

type scriptedAgent struct {
	columns []int
	next    int
}

// NewScriptedAgent replays columns in order, full or not, then falls back to
// the first legal column once the script runs out.
func NewScriptedAgent(columns ...int) Agent {
	script := make([]int, len(columns))
	copy(script, columns)
	return &scriptedAgent{columns: script}
}

func (a *scriptedAgent) FindMove(view game.View) int {
	if a.next < len(a.columns) {
		column := a.columns[a.next]
		a.next++
		return column
	}
	return firstLegal(view)
}
