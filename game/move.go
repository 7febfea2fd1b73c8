package game

import "fmt"

// Move records one attempt to drop a piece.
type Move struct {
	Player Marker
	Column int
}

func (m Move) String() string {
	return fmt.Sprintf("%s@%d", m.Player, m.Column)
}
