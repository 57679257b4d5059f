package game

import (
	"errors"
	"fmt"
	"strings"
)

// Player-facing notices. Presentation (toasts, delays) belongs to the caller.
const (
	NoticeIncompleteGuess = "Not enough letters"
	NoticeUnknownWord     = "Bird not found"
	NoticeHardModeLocked  = "Hard Mode can only be enabled at the start!"
	NoticeShareCopied     = "Game copied to clipboard"
)

var winMessages = []string{
	"Im-peck-able",
	"You quacked it!",
	"So fly",
	"Owl-some",
	"Un-bill-ievable",
	"Baza bing baza boom!",
	"Hen-tastic",
	"Eggs-traordinary",
	"Egg-cellent",
	"Res-peck!",
	"Talon-ted!",
	"What a hoot!",
}

// Notice translates a rejection into the message shown to the player.
// It returns "" for ErrSessionTerminal (a silent no-op) and for nil.
func Notice(err error) string {
	var pv *PositionViolation
	var cv *ContainmentViolation
	switch {
	case err == nil, errors.Is(err, ErrSessionTerminal):
		return ""
	case errors.Is(err, ErrIncompleteGuess):
		return NoticeIncompleteGuess
	case errors.Is(err, ErrUnknownWord):
		return NoticeUnknownWord
	case errors.Is(err, ErrHardModeLocked):
		return NoticeHardModeLocked
	case errors.As(err, &pv):
		return fmt.Sprintf("Must use %s in position %d", pv.Letter, pv.Position+1)
	case errors.As(err, &cv):
		return fmt.Sprintf("Guess must contain %s", cv.Letter)
	}
	return err.Error()
}

// WinMessage picks a celebratory message using intn (e.g. rand.IntN).
func WinMessage(intn func(n int) int) string {
	return winMessages[intn(len(winMessages))]
}

// LossMessage reveals the solution. definition is the bird's display name;
// when empty the word itself is used.
func LossMessage(solution, definition string) string {
	solution = strings.ToUpper(solution)
	if definition == "" {
		definition = solution
	}
	return fmt.Sprintf("The bird was the %s (%s)", definition, solution)
}
