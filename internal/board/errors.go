package board

import "errors"

var (
	// ErrIllegalState is returned when an operation's precondition on the
	// board does not hold: spawning on a full grid, or asking for a move on a
	// finished game.
	ErrIllegalState = errors.New("board: illegal state")

	// ErrInvalidDirection is returned for a direction outside Up, Right,
	// Down and Left.
	ErrInvalidDirection = errors.New("board: invalid direction")
)
