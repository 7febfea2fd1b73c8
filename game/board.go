package game

import (
	"fmt"
	"strings"
)

// Board is a single game of connect four. It owns its grid and counters;
// every game needs its own Board and a Board must not be shared between
// goroutines without external locking.
type Board struct {
	rows    int
	columns int
	cells   []Marker // Row-major, row 0 is the top
	fill    []int    // Occupied cells per column
	movesA  int
	movesB  int
	winner  Marker // Empty until a four-in-a-row lands
	last    Move
}

// New returns an empty standard 6x7 board.
func New() *Board {
	b, _ := NewSized(Rows, Columns)
	return b
}

// NewSized returns an empty board with the given dimensions.
func NewSized(rows, columns int) (*Board, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("invalid board size %dx%d", rows, columns)
	}
	return &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Marker, rows*columns),
		fill:    make([]int, columns),
	}, nil
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

// Cell returns the marker at (row, column). Out of range cells read as Empty.
func (b *Board) Cell(row, column int) Marker {
	if !b.inBounds(row, column) {
		return Empty
	}
	return b.cells[row*b.columns+column]
}

// ColumnFill returns the number of pieces stacked in column.
func (b *Board) ColumnFill(column int) int {
	if column < 0 || column >= b.columns {
		return 0
	}
	return b.fill[column]
}

// NextFreeRow returns the row a piece dropped into column would land on.
// ok is false when the column is full or does not exist.
func (b *Board) NextFreeRow(column int) (row int, ok bool) {
	if column < 0 || column >= b.columns || b.fill[column] == b.rows {
		return -1, false
	}
	return b.rows - 1 - b.fill[column], true
}

// LegalColumns lists the columns that still accept a piece.
func (b *Board) LegalColumns() []int {
	columns := make([]int, 0, b.columns)
	for c, n := range b.fill {
		if n < b.rows {
			columns = append(columns, c)
		}
	}
	return columns
}

// Moves returns the number of attempts made by player, invalid ones included.
func (b *Board) Moves(player Marker) int {
	switch player {
	case PlayerA:
		return b.movesA
	case PlayerB:
		return b.movesB
	default:
		return 0
	}
}

func (b *Board) TotalMoves() int {
	return b.movesA + b.movesB
}

// Turn returns the player expected to move next.
func (b *Board) Turn() Marker {
	if b.movesA == b.movesB {
		return PlayerA
	}
	return PlayerB
}

// LastMove returns the most recent accepted attempt.
func (b *Board) LastMove() Move {
	return b.last
}

func (b *Board) Winner() Marker {
	return b.winner
}

func (b *Board) Status() Status {
	switch {
	case b.winner == PlayerA:
		return StatusPlayerAWon
	case b.winner == PlayerB:
		return StatusPlayerBWon
	case b.full():
		return StatusDraw
	default:
		return InProgress
	}
}

// DropPiece applies one move attempt. Game outcomes, including a full column
// and a finished board, are reported through Outcome. A non-nil error is
// always a *ContractError and means the call itself was illegal.
func (b *Board) DropPiece(player Marker, column int) (Outcome, error) {
	move := Move{Player: player, Column: column}

	if b.full() {
		return Draw, nil
	}
	if b.winner != Empty {
		return Continued, &ContractError{Move: move, Err: ErrGameOver}
	}
	if player != PlayerA && player != PlayerB {
		return Continued, &ContractError{Move: move, Err: ErrUnknownPlayer}
	}
	if player != b.Turn() {
		return Continued, &ContractError{Move: move, Err: ErrOutOfTurn}
	}
	if column < 0 || column >= b.columns {
		return Continued, &ContractError{Move: move, Err: ErrColumnOutOfRange}
	}

	b.last = move
	row, ok := b.NextFreeRow(column)
	if !ok {
		// A full column still costs the mover their turn
		b.countMove(player)
		return InvalidMove, nil
	}

	b.cells[row*b.columns+column] = player
	b.fill[column]++
	b.countMove(player)

	if b.hasLine(row, column) {
		b.winner = player
		return wonBy(player), nil
	}
	return Continued, nil
}

// Encode flattens the board row-major into 0 (empty), 1 (PlayerA) and
// 2 (PlayerB).
func (b *Board) Encode() []int {
	encoded := make([]int, len(b.cells))
	for i, m := range b.cells {
		encoded[i] = int(m)
	}
	return encoded
}

// Copy returns an independent deep copy of the board.
func (b *Board) Copy() *Board {
	cells := make([]Marker, len(b.cells))
	copy(cells, b.cells)
	fill := make([]int, len(b.fill))
	copy(fill, b.fill)

	return &Board{
		rows:    b.rows,
		columns: b.columns,
		cells:   cells,
		fill:    fill,
		movesA:  b.movesA,
		movesB:  b.movesB,
		winner:  b.winner,
		last:    b.last,
	}
}

// String renders the grid as text, top row first. Used for debug logging.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			switch b.Cell(r, c) {
			case PlayerA:
				sb.WriteByte('A')
			case PlayerB:
				sb.WriteByte('B')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) full() bool {
	return b.movesA+b.movesB == b.rows*b.columns
}

func (b *Board) countMove(player Marker) {
	if player == PlayerA {
		b.movesA++
	} else {
		b.movesB++
	}
}

func (b *Board) inBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

// View returns a read-only handle on the board for move sources and
// renderers. It reflects later moves but cannot make them.
func (b *Board) View() View {
	return boardView{b: b}
}

type boardView struct {
	b *Board
}

func (v boardView) Rows() int                          { return v.b.Rows() }
func (v boardView) Columns() int                       { return v.b.Columns() }
func (v boardView) Cell(row, column int) Marker        { return v.b.Cell(row, column) }
func (v boardView) NextFreeRow(column int) (int, bool) { return v.b.NextFreeRow(column) }
func (v boardView) LegalColumns() []int                { return v.b.LegalColumns() }
func (v boardView) Turn() Marker                       { return v.b.Turn() }
func (v boardView) Encode() []int                      { return v.b.Encode() }
