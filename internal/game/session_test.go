package game

import (
	"errors"
	"strings"
	"testing"
)

type testDict map[string]bool

func (d testDict) IsValidWord(w string) bool { return d[strings.ToUpper(w)] }

func newTestDict(words ...string) testDict {
	d := testDict{}
	for _, w := range words {
		d[strings.ToUpper(w)] = true
	}
	return d
}

var birds = newTestDict("ABBEY", "ABCDE", "ABBOT", "CRANE", "EGRET", "HERON", "RAVEN", "ROBIN", "STORK", "QUAIL", "XBBEY", "ABEXY")

func TestSession_Win(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "heron", ModeDaily, false)
	if s.Outcome() != OutcomeActive || s.Attempts() != 0 {
		t.Fatalf("Expected fresh active session, got %s with %d guesses", s.Outcome(), s.Attempts())
	}

	res, err := s.Submit("crane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeActive || res.Completed || res.Attempts != 1 {
		t.Errorf("Unexpected result after first guess: %+v", res)
	}

	res, err = s.Submit(" Heron ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeWon || !res.Completed || res.Attempts != 2 {
		t.Errorf("Expected win on attempt 2, got %+v", res)
	}
	if got := s.Guesses(); len(got) != 2 || got[1] != "HERON" {
		t.Errorf("Expected guesses stored upper-case, got %v", got)
	}
}

func TestSession_Loss(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "HERON", ModeDaily, false)
	guesses := []string{"CRANE", "EGRET", "RAVEN", "ROBIN", "STORK", "QUAIL"}
	completed := 0
	for i, g := range guesses {
		res, err := s.Submit(g)
		if err != nil {
			t.Fatalf("guess %d: unexpected error: %v", i, err)
		}
		if res.Completed {
			completed++
		}
	}
	if s.Outcome() != OutcomeLost {
		t.Errorf("Expected lost after %d misses, got %s", len(guesses), s.Outcome())
	}
	if completed != 1 {
		t.Errorf("Expected exactly one terminal transition, got %d", completed)
	}
}

func TestSession_TerminalRejectsFurtherGuesses(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "HERON", ModePractice, false)
	if _, err := s.Submit("HERON"); err != nil {
		t.Fatal(err)
	}
	_, err := s.Submit("CRANE")
	if !errors.Is(err, ErrSessionTerminal) {
		t.Errorf("Expected ErrSessionTerminal, got %v", err)
	}
	if s.Attempts() != 1 {
		t.Errorf("Terminal session must not grow, has %d guesses", s.Attempts())
	}
	if Notice(err) != "" {
		t.Error("Terminal rejections should be silent")
	}
}

func TestSession_Rejections(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "HERON", ModeDaily, false)

	if _, err := s.Submit("CRAN"); !errors.Is(err, ErrIncompleteGuess) {
		t.Errorf("Expected ErrIncompleteGuess, got %v", err)
	}
	if _, err := s.Submit("ZZZZZ"); !errors.Is(err, ErrUnknownWord) {
		t.Errorf("Expected ErrUnknownWord, got %v", err)
	}
	if s.Attempts() != 0 || s.Outcome() != OutcomeActive {
		t.Errorf("Rejected guesses must not change state: %d guesses, %s", s.Attempts(), s.Outcome())
	}
}

func TestSession_HardMode(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "ABBEY", ModeDaily, true)
	if _, err := s.Submit("ABCDE"); err != nil {
		t.Fatal(err)
	}

	_, err := s.Submit("XBBEY")
	var pv *PositionViolation
	if !errors.As(err, &pv) || pv.Position != 0 {
		t.Errorf("Expected position violation at 0, got %v", err)
	}
	if Notice(err) != "Must use A in position 1" {
		t.Errorf("Unexpected notice %q", Notice(err))
	}

	_, err = s.Submit("ABBOT")
	var cv *ContainmentViolation
	if !errors.As(err, &cv) || cv.Letter != "E" {
		t.Errorf("Expected containment violation for E, got %v", err)
	}
	if Notice(err) != "Guess must contain E" {
		t.Errorf("Unexpected notice %q", Notice(err))
	}

	if _, err := s.Submit("ABEXY"); err != nil {
		t.Errorf("Expected ABEXY to satisfy constraints, got %v", err)
	}
	if s.Attempts() != 2 {
		t.Errorf("Expected 2 accepted guesses, got %d", s.Attempts())
	}
}

func TestSession_SetHardMode(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "HERON", ModeDaily, false)
	if err := s.SetHardMode(true); err != nil {
		t.Fatalf("Expected toggle before first guess to succeed, got %v", err)
	}
	if err := s.SetHardMode(false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit("CRANE"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetHardMode(true); !errors.Is(err, ErrHardModeLocked) {
		t.Errorf("Expected ErrHardModeLocked, got %v", err)
	}
	if s.HardMode() {
		t.Error("Rejected toggle must not change state")
	}

	h := NewSession(DefaultRules(), birds, "HERON", ModeDaily, true)
	if _, err := h.Submit("CRANE"); err != nil {
		t.Fatal(err)
	}
	if err := h.SetHardMode(false); err != nil {
		t.Errorf("Turning hard mode off should always be allowed, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	rules := DefaultRules()

	s, err := Restore(rules, birds, "HERON", ModeDaily, false, []string{"crane", "heron", "robin"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Outcome() != OutcomeWon || s.Attempts() != 2 {
		t.Errorf("Expected won after 2 guesses, got %s after %d", s.Outcome(), s.Attempts())
	}

	s, err = Restore(rules, birds, "HERON", ModeDaily, false, []string{"CRANE", "EGRET", "RAVEN", "ROBIN", "STORK", "QUAIL", "ABBEY"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Outcome() != OutcomeLost || s.Attempts() != rules.MaxAttempts {
		t.Errorf("Expected lost with %d guesses, got %s with %d", rules.MaxAttempts, s.Outcome(), s.Attempts())
	}

	s, err = Restore(rules, birds, "HERON", ModeDaily, false, []string{"CRANE"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Outcome() != OutcomeActive {
		t.Errorf("Expected active, got %s", s.Outcome())
	}

	if _, err := Restore(rules, birds, "HERON", ModeDaily, false, []string{"CR4NE"}); !errors.Is(err, ErrCorruptState) {
		t.Errorf("Expected ErrCorruptState, got %v", err)
	}
	if _, err := Restore(rules, birds, "HERONS", ModeDaily, false, nil); !errors.Is(err, ErrCorruptState) {
		t.Errorf("Expected ErrCorruptState for bad solution, got %v", err)
	}
}

func TestBoard(t *testing.T) {
	s := NewSession(DefaultRules(), birds, "ABBEY", ModeDaily, false)
	_, _ = s.Submit("ABCDE")
	board := s.Board()
	if len(board) != 1 || board[0][0] != StatusCorrect || board[0][4] != StatusPresent {
		t.Errorf("Unexpected board %v", board)
	}
}
