package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEvaluate_AllCorrect(t *testing.T) {
	got := Evaluate("HERON", "heron")
	for i, st := range got {
		if st != StatusCorrect {
			t.Errorf("position %d: expected correct, got %s", i, st)
		}
	}
	if !Solved(got) {
		t.Error("Expected Solved to be true for an exact match")
	}
}

func TestEvaluate_DuplicateLetters(t *testing.T) {
	tests := []struct {
		guess, solution string
		want            []Status
	}{
		{"BABBY", "ABBEY", []Status{StatusPresent, StatusPresent, StatusCorrect, StatusAbsent, StatusCorrect}},
		{"EERIE", "RAVEN", []Status{StatusPresent, StatusAbsent, StatusPresent, StatusAbsent, StatusAbsent}},
		{"SPEED", "ABIDE", []Status{StatusAbsent, StatusAbsent, StatusPresent, StatusAbsent, StatusPresent}},
		{"GEESE", "EAGLE", []Status{StatusPresent, StatusPresent, StatusAbsent, StatusAbsent, StatusCorrect}},
		{"ROBIN", "EGRET", []Status{StatusPresent, StatusAbsent, StatusAbsent, StatusAbsent, StatusAbsent}},
	}
	for _, tt := range tests {
		got := Evaluate(tt.guess, tt.solution)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Evaluate(%s, %s) = %v, want %v", tt.guess, tt.solution, got, tt.want)
		}
		again := Evaluate(tt.guess, tt.solution)
		if !reflect.DeepEqual(got, again) {
			t.Errorf("Evaluate(%s, %s) not stable: %v then %v", tt.guess, tt.solution, got, again)
		}
	}
}

func TestEvaluate_NeverOvercountsLetters(t *testing.T) {
	words := []string{"ABBEY", "BABBY", "EAGLE", "GEESE", "EERIE", "HERON", "STORK", "KAKAS", "LLAMA", "ALLAY"}
	for _, sol := range words {
		for _, guess := range words {
			got := Evaluate(guess, sol)
			if len(got) != len(sol) {
				t.Fatalf("Evaluate(%s, %s) length %d, want %d", guess, sol, len(got), len(sol))
			}
			hits := map[byte]int{}
			for i, st := range got {
				if st == StatusCorrect || st == StatusPresent {
					hits[guess[i]]++
				}
			}
			for letter, n := range hits {
				if occ := strings.Count(sol, string(letter)); n > occ {
					t.Errorf("Evaluate(%s, %s): %c marked %d times, occurs %d", guess, sol, letter, n, occ)
				}
			}
		}
	}
}

func TestFirstViolation_Position(t *testing.T) {
	prior := []string{"ABCDE"}
	err := FirstViolation("XBBEY", prior, "ABBEY")
	var pv *PositionViolation
	if !errors.As(err, &pv) {
		t.Fatalf("Expected position violation, got %v", err)
	}
	if pv.Letter != "A" || pv.Position != 0 {
		t.Errorf("Expected A at 0, got %s at %d", pv.Letter, pv.Position)
	}

	err = FirstViolation("AXBEY", prior, "ABBEY")
	if !errors.As(err, &pv) {
		t.Fatalf("Expected position violation, got %v", err)
	}
	if pv.Letter != "B" || pv.Position != 1 {
		t.Errorf("Expected B at 1, got %s at %d", pv.Letter, pv.Position)
	}
	if pv.Error() != "must use B in position 2" {
		t.Errorf("Unexpected message: %q", pv.Error())
	}
}

func TestFirstViolation_Containment(t *testing.T) {
	// E is present in ABCDE against ABBEY.
	err := FirstViolation("ABXXX", []string{"ABCDE"}, "ABBEY")
	var cv *ContainmentViolation
	if !errors.As(err, &cv) {
		t.Fatalf("Expected containment violation, got %v", err)
	}
	if cv.Letter != "E" {
		t.Errorf("Expected E, got %s", cv.Letter)
	}
}

func TestFirstViolation_OrderFollowsGuessOrder(t *testing.T) {
	// First guess pins Y at 4, second pins A at 0; Y is reported first.
	prior := []string{"XXXXY", "AXXXX"}
	err := FirstViolation("BBBBB", prior, "ABBEY")
	var pv *PositionViolation
	if !errors.As(err, &pv) || pv.Letter != "Y" || pv.Position != 4 {
		t.Fatalf("Expected Y at 4, got %v", err)
	}

	// Known letters are checked in discovery order: E (guess 1) before B (guess 2).
	prior = []string{"EXXXX", "XXXXB"}
	err = FirstViolation("QQQQQ", prior, "ABBEY")
	var cv *ContainmentViolation
	if !errors.As(err, &cv) || cv.Letter != "E" {
		t.Fatalf("Expected containment E, got %v", err)
	}
}

func TestFirstViolation_None(t *testing.T) {
	if err := FirstViolation("ABBEY", []string{"ABCDE"}, "ABBEY"); err != nil {
		t.Errorf("Expected no violation, got %v", err)
	}
	if err := FirstViolation("anything", nil, "ABBEY"); err != nil {
		t.Errorf("Expected no violation without prior guesses, got %v", err)
	}
}
