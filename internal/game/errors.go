package game

import "errors"

// Move rejections. They never change the game and are safe to ignore.
var (
	ErrOutOfTurn    = errors.New("not this player's turn")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrOutOfBounds  = errors.New("cell out of bounds")
)

var (
	ErrInvalidMark  = errors.New("invalid mark")
	ErrInvalidState = errors.New("invalid game state")
)

// IsRejection reports whether err is one of the move rejections.
func IsRejection(err error) bool {
	return errors.Is(err, ErrOutOfTurn) || errors.Is(err, ErrCellOccupied) || errors.Is(err, ErrOutOfBounds)
}
