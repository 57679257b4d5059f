// internal/game/session.go
//
// Session state machine for a single round of play.
//
// States: active → won | lost. A session starts active with no guesses and a
// fixed solution. Submit appends a guess or rejects it without touching
// state; terminal sessions reject everything with ErrSessionTerminal.
//
// Sessions are not safe for concurrent use; callers serialize actions.
package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Session holds one play-through.
type Session struct {
	rules    Rules
	dict     Dictionary
	solution string
	mode     Mode
	hardMode bool
	guesses  []string
	outcome  Outcome
}

// Result describes an accepted guess.
type Result struct {
	Statuses  []Status `json:"statuses"`
	Outcome   Outcome  `json:"outcome"`
	Attempts  int      `json:"attempts"`
	Completed bool     `json:"completed"` // true only on the transition into won/lost
}

// NewSession starts an active session with no guesses.
func NewSession(rules Rules, dict Dictionary, solution string, mode Mode, hardMode bool) *Session {
	return &Session{
		rules:    rules,
		dict:     dict,
		solution: strings.ToUpper(solution),
		mode:     mode,
		hardMode: hardMode,
		guesses:  []string{},
		outcome:  OutcomeActive,
	}
}

// Restore rebuilds a session from persisted guesses.
//
// The outcome is recomputed from the guesses rather than trusted from
// storage: anything after a winning guess or beyond MaxAttempts is dropped.
// Guesses are not re-checked against the dictionary, since word lists may
// change between deployments. A guess of the wrong shape yields
// ErrCorruptState so the caller can start over.
func Restore(rules Rules, dict Dictionary, solution string, mode Mode, hardMode bool, guesses []string) (*Session, error) {
	s := NewSession(rules, dict, solution, mode, hardMode)
	if len([]rune(s.solution)) != rules.WordLength {
		return nil, ErrCorruptState
	}
	for _, g := range guesses {
		if s.outcome.Terminal() {
			break
		}
		g = strings.ToUpper(g)
		if !wellFormed(g, rules.WordLength) {
			return nil, ErrCorruptState
		}
		s.accept(g)
	}
	return s, nil
}

// Submit validates candidate and, when accepted, appends it.
//
// Rejections, in order:
//   - ErrSessionTerminal if the session is won or lost.
//   - ErrIncompleteGuess if candidate is not WordLength letters.
//   - ErrUnknownWord if the dictionary does not know it.
//   - *PositionViolation / *ContainmentViolation in hard mode.
func (s *Session) Submit(candidate string) (Result, error) {
	if s.outcome.Terminal() {
		return Result{}, ErrSessionTerminal
	}
	candidate = strings.ToUpper(strings.TrimSpace(candidate))
	if utf8.RuneCountInString(candidate) != s.rules.WordLength {
		return Result{}, ErrIncompleteGuess
	}
	if s.dict != nil && !s.dict.IsValidWord(candidate) {
		return Result{}, ErrUnknownWord
	}
	if s.hardMode {
		if err := FirstViolation(candidate, s.guesses, s.solution); err != nil {
			return Result{}, err
		}
	}

	statuses := s.accept(candidate)
	return Result{
		Statuses:  statuses,
		Outcome:   s.outcome,
		Attempts:  len(s.guesses),
		Completed: s.outcome.Terminal(),
	}, nil
}

// accept appends an already validated guess and advances the outcome.
func (s *Session) accept(guess string) []Status {
	statuses := Evaluate(guess, s.solution)
	s.guesses = append(s.guesses, guess)

	if guess == s.solution {
		s.outcome = OutcomeWon
	} else if len(s.guesses) >= s.rules.MaxAttempts {
		s.outcome = OutcomeLost
	}
	return statuses
}

// SetHardMode changes the hard-mode flag.
// Turning it on is only allowed before the first guess; turning it off is
// always allowed. Setting the current value is a no-op.
func (s *Session) SetHardMode(on bool) error {
	if on == s.hardMode {
		return nil
	}
	if len(s.guesses) > 0 && !s.hardMode {
		return ErrHardModeLocked
	}
	s.hardMode = on
	return nil
}

func (s *Session) Solution() string { return s.solution }
func (s *Session) Mode() Mode       { return s.mode }
func (s *Session) HardMode() bool   { return s.hardMode }
func (s *Session) Outcome() Outcome { return s.outcome }
func (s *Session) Rules() Rules     { return s.rules }

// Guesses returns a copy of the submitted guesses in submission order.
func (s *Session) Guesses() []string {
	out := make([]string, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// Attempts is the number of accepted guesses.
func (s *Session) Attempts() int { return len(s.guesses) }

// Board scores every guess so far, row by row.
func (s *Session) Board() [][]Status {
	rows := make([][]Status, len(s.guesses))
	for i, g := range s.guesses {
		rows[i] = Evaluate(g, s.solution)
	}
	return rows
}

// wellFormed checks for exactly n letters.
func wellFormed(w string, n int) bool {
	count := 0
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
		count++
	}
	return count == n
}
