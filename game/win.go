package game

// directions covers horizontal, vertical and both diagonals. The opposite
// half of each line is walked by negating the step.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// hasLine reports whether the piece at (row, column) sits on a run of at
// least ToWin identical markers. Only lines through the anchor are scanned.
func (b *Board) hasLine(row, column int) bool {
	marker := b.Cell(row, column)
	if marker == Empty {
		return false
	}

	for _, d := range directions {
		run := 1 + b.countRun(row, column, d[0], d[1], marker) + b.countRun(row, column, -d[0], -d[1], marker)
		if run >= ToWin {
			return true
		}
	}
	return false
}

// countRun counts contiguous markers starting next to (row, column) and
// stepping by (dr, dc) until a different marker or the grid edge.
func (b *Board) countRun(row, column, dr, dc int, marker Marker) int {
	count := 0
	r, c := row+dr, column+dc
	for b.inBounds(r, c) && b.cells[r*b.columns+c] == marker {
		count++
		r += dr
		c += dc
	}
	return count
}
