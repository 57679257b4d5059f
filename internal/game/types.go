// internal/game/types.go
//
// Core type definitions for the Birdle game engine.
// Defines:
//   - Status: per-letter result of a guess (correct/present/absent).
//   - Mode: which kind of round is being played (daily/practice).
//   - Outcome: where a session stands (active/won/lost).
//   - Rules: board dimensions shared by every session.

package game

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the solution at this position.
//   - "present": letter is in the solution at another, unmatched position.
//   - "absent":  letter does not account for any unmatched solution letter.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Mode selects where a session's solution comes from.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeDaily || m == ModePractice }

// Outcome is the coarse state of a session.
type Outcome string

const (
	OutcomeActive Outcome = "active"
	OutcomeWon    Outcome = "won"
	OutcomeLost   Outcome = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (o Outcome) Terminal() bool { return o == OutcomeWon || o == OutcomeLost }

// Rules holds the board dimensions.
type Rules struct {
	WordLength  int // letters per word (typically 5)
	MaxAttempts int // guesses allowed before a loss (typically 6)
}

const (
	defaultWordLength  = 5
	defaultMaxAttempts = 6
)

// DefaultRules returns the classic 6x5 board.
func DefaultRules() Rules {
	return Rules{WordLength: defaultWordLength, MaxAttempts: defaultMaxAttempts}
}

// Dictionary answers membership questions for submitted guesses.
// words.Catalog satisfies it.
type Dictionary interface {
	IsValidWord(w string) bool
}
