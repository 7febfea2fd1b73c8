package agent

import (
	"connect4/game"
	"fmt"
	"math"
)

type weightedAgent struct {
	rows    int
	columns int
	weights []float64 // columns x (rows*columns) matrix followed by columns biases
}

// NumWeights is the length of the weight vector a weighted agent needs for a
// board of the given size.
func NumWeights(rows, columns int) int {
	return rows*columns*columns + columns
}

// NewWeightedAgent returns a linear policy over the board encoding. Each
// column scores W[c]·Encode()+b[c] and the highest score is played, legal or
// not, so a poor weight vector is punished with InvalidMove. The agent only
// plays boards of the size it was built for; FindMove panics on any other.
func NewWeightedAgent(rows, columns int, weights []float64) (Agent, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("invalid board size %dx%d", rows, columns)
	}
	if want := NumWeights(rows, columns); len(weights) != want {
		return nil, fmt.Errorf("weighted agent needs %d weights, got %d", want, len(weights))
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &weightedAgent{rows: rows, columns: columns, weights: w}, nil
}

func (a *weightedAgent) FindMove(view game.View) int {
	if view.Rows() != a.rows || view.Columns() != a.columns {
		panic(fmt.Sprintf("weighted agent built for %dx%d, got %dx%d board", a.rows, a.columns, view.Rows(), view.Columns()))
	}
	return argmax(a.scores(view.Encode()))
}

func (a *weightedAgent) scores(encoded []int) []float64 {
	cells := a.rows * a.columns
	biases := a.weights[cells*a.columns:]

	scores := make([]float64, a.columns)
	for c := range scores {
		row := a.weights[c*cells : (c+1)*cells]
		sum := biases[c]
		for i, v := range encoded {
			sum += row[i] * float64(v)
		}
		scores[c] = sum
	}
	return scores
}

// argmax returns the first index holding the maximum score.
func argmax(scores []float64) int {
	best := 0
	top := math.Inf(-1)
	for i, s := range scores {
		if s > top {
			top = s
			best = i
		}
	}
	return best
}
