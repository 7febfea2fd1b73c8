package game

import (
	"errors"
	"fmt"
)

// Contract violations. These are caller bugs, not game events: a driver that
// receives one should abort the game rather than branch on it.
var (
	ErrOutOfTurn        = errors.New("player moved out of turn")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrGameOver         = errors.New("game is already won")
)

// ContractError describes a rejected DropPiece call. The board is left
// untouched whenever one is returned.
type ContractError struct {
	Move Move
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation on %s: %v", e.Move, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// IsContractViolation reports whether err came from a misuse of the board.
func IsContractViolation(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
