package agent

import (
	"connect4/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that picks uniformly among the columns that
// still accept a piece. Agents built from the same seed play the same game.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(view game.View) int {
	columns := view.LegalColumns()
	if len(columns) == 0 {
		return firstLegal(view)
	}
	return columns[a.rng.Intn(len(columns))]
}
