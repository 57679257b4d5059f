package game

import (
	"errors"
	"fmt"
)

// Rejections returned by Session operations. None of them change state.
var (
	ErrIncompleteGuess = errors.New("not enough letters")
	ErrUnknownWord     = errors.New("not in word list")
	ErrSessionTerminal = errors.New("game finished")
	ErrHardModeLocked  = errors.New("hard mode can only be enabled at the start")
	ErrCorruptState    = errors.New("persisted session is malformed")
)

// PositionViolation: a letter confirmed correct at Position was not reused there.
// Position is zero-based.
type PositionViolation struct {
	Letter   string
	Position int
}

func (e *PositionViolation) Error() string {
	return fmt.Sprintf("must use %s in position %d", e.Letter, e.Position+1)
}

// ContainmentViolation: a letter confirmed present is missing from the guess.
type ContainmentViolation struct {
	Letter string
}

func (e *ContainmentViolation) Error() string {
	return fmt.Sprintf("guess must contain %s", e.Letter)
}

// IsRejection reports whether err is one of the recoverable, player-correctable
// rejections produced by this package.
func IsRejection(err error) bool {
	var pv *PositionViolation
	var cv *ContainmentViolation
	switch {
	case errors.Is(err, ErrIncompleteGuess),
		errors.Is(err, ErrUnknownWord),
		errors.Is(err, ErrSessionTerminal),
		errors.Is(err, ErrHardModeLocked),
		errors.As(err, &pv),
		errors.As(err, &cv):
		return true
	}
	return false
}
