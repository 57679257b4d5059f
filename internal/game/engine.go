// internal/game/engine.go
//
// Scoring and hard-mode rules.
// Responsibilities:
//   - Score guesses using the classic two-pass algorithm (Evaluate).
//   - Derive the constraints revealed by earlier guesses and report the
//     first one a candidate breaks (FirstViolation).
//
// Both functions are pure; words are compared case-insensitively.
package game

import (
	"strings"
)

// Evaluate scores guess against solution.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the remaining (unmatched) solution letters.
//
// Pass 2:
//   - For each unmatched guess letter: if the letter still has a remaining
//     count, mark it present and consume one; otherwise mark it absent.
//
// A letter is therefore never reported correct/present more often than it
// occurs in the solution. The result has one status per guess letter.
func Evaluate(guess, solution string) []Status {
	g := []rune(strings.ToUpper(guess))
	s := []rune(strings.ToUpper(solution))
	res := make([]Status, len(g))

	remaining := make(map[rune]int, len(s))

	// First pass: hits, and counts for the unmatched solution letters.
	for i := range s {
		if i < len(g) && g[i] == s[i] {
			res[i] = StatusCorrect
		} else {
			remaining[s[i]]++
		}
	}

	// Second pass: presents/absents for everything not already correct.
	for i, r := range g {
		if res[i] == StatusCorrect {
			continue
		}
		if remaining[r] > 0 {
			res[i] = StatusPresent
			remaining[r]--
		} else {
			res[i] = StatusAbsent
		}
	}
	return res
}

// Solved reports whether every status is correct.
func Solved(statuses []Status) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, st := range statuses {
		if st != StatusCorrect {
			return false
		}
	}
	return true
}

// FirstViolation checks candidate against everything revealed by prior.
//
// For each prior guess in submission order the guess is scored against the
// solution; its correct and present letters join the known-letter set (in
// order of first discovery) and each correct letter pins its position. The
// first pinned position the candidate does not honour is returned as a
// *PositionViolation. Once all pins hold, the first known letter missing
// from the candidate is returned as a *ContainmentViolation. nil means the
// candidate respects every constraint.
func FirstViolation(candidate string, prior []string, solution string) error {
	cand := []rune(strings.ToUpper(candidate))

	var known []rune
	seen := make(map[rune]bool)

	for _, guess := range prior {
		g := []rune(strings.ToUpper(guess))
		statuses := Evaluate(guess, solution)

		for i, st := range statuses {
			if st != StatusCorrect && st != StatusPresent {
				continue
			}
			if !seen[g[i]] {
				seen[g[i]] = true
				known = append(known, g[i])
			}
			if st == StatusCorrect && (i >= len(cand) || cand[i] != g[i]) {
				return &PositionViolation{Letter: string(g[i]), Position: i}
			}
		}
	}

	for _, r := range known {
		if !strings.ContainsRune(string(cand), r) {
			return &ContainmentViolation{Letter: string(r)}
		}
	}
	return nil
}
