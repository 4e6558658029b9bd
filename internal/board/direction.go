package board

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
// Values match the 1-4 numbering used by the console driver.
type Direction int

const (
	Up Direction = iota + 1
	Right
	Down
	Left
)

// Directions lists every direction in canonical order.
var Directions = [...]Direction{Up, Right, Down, Left}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts user input into a Direction.
// Accepts the numbers 1-4, direction names and the WASD keys.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "up", "u", "w", "k":
		return Up, nil
	case "2", "right", "r", "d", "l":
		return Right, nil
	case "3", "down", "s", "j":
		return Down, nil
	case "4", "left", "a", "h":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
