package game

// Standard board dimensions and the run length that wins.
const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Marker identifies the piece occupying a cell. Its numeric value is also
// the cell's value in the board encoding.
type Marker int

const (
	Empty Marker = iota
	PlayerA
	PlayerB
)

func (m Marker) String() string {
	switch m {
	case Empty:
		return "empty"
	case PlayerA:
		return "playerA"
	case PlayerB:
		return "playerB"
	default:
		return "unknown"
	}
}

// Outcome is the result of one move attempt.
type Outcome int

const (
	Continued Outcome = iota
	PlayerAWon
	PlayerBWon
	InvalidMove
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case PlayerAWon:
		return "playerA_won"
	case PlayerBWon:
		return "playerB_won"
	case InvalidMove:
		return "invalid_move"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the outcome ends the game from the board's point
// of view. InvalidMove is not terminal for the board; drivers decide.
func (o Outcome) IsTerminal() bool {
	return o == PlayerAWon || o == PlayerBWon || o == Draw
}

// Status is the state machine view of a board.
type Status int

const (
	InProgress Status = iota
	StatusPlayerAWon
	StatusPlayerBWon
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case StatusPlayerAWon:
		return "playerA_won"
	case StatusPlayerBWon:
		return "playerB_won"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// View is the read-only surface of a board handed to move sources and
// renderers.
type View interface {
	Rows() int
	Columns() int
	Cell(row, column int) Marker
	NextFreeRow(column int) (int, bool)
	LegalColumns() []int
	Turn() Marker
	Encode() []int
}

func wonBy(m Marker) Outcome {
	if m == PlayerA {
		return PlayerAWon
	}
	return PlayerBWon
}
