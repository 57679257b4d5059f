// Package stats folds completed daily games into cumulative statistics.
package stats

import (
	"math"

	"github.com/samber/lo"
)

// Stats is a player's cumulative record. It is updated once per completed
// daily game and never for practice games.
type Stats struct {
	TotalPlayed       int         `json:"totalPlayed"`
	TotalWon          int         `json:"totalWon"`
	CurrentStreak     int         `json:"currentStreak"`
	MaxStreak         int         `json:"maxStreak"`
	GuessDistribution map[int]int `json:"guessDistribution"` // attempts (1..max) -> wins
}

// New returns zero stats with an empty distribution for 1..maxAttempts.
func New(maxAttempts int) Stats {
	dist := make(map[int]int, maxAttempts)
	for i := 1; i <= maxAttempts; i++ {
		dist[i] = 0
	}
	return Stats{GuessDistribution: dist}
}

// RecordCompletedGame returns s updated with one finished game.
//
// A win counts toward the distribution bucket for attempts and extends the
// streak; a loss (attempts == maxAttempts by convention) resets the current
// streak and leaves the distribution alone. s is not modified.
func RecordCompletedGame(s Stats, attempts int, won bool) Stats {
	out := s
	out.GuessDistribution = lo.Assign(map[int]int{}, s.GuessDistribution)

	out.TotalPlayed++
	if won {
		out.TotalWon++
		out.GuessDistribution[attempts]++
		out.CurrentStreak++
		out.MaxStreak = max(out.MaxStreak, out.CurrentStreak)
	} else {
		out.CurrentStreak = 0
	}
	return out
}

// SuccessRate is the rounded percentage of games won.
func (s Stats) SuccessRate() int {
	if s.TotalPlayed == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.TotalWon) / float64(s.TotalPlayed)))
}
