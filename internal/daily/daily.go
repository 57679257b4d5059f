// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
//
// Every client computes the same puzzle from the wall clock and two
// deployment constants, with no server round-trip and no stored counter:
//
//	index    = floor((now − epoch) / 24h)
//	solution = answers[(stepSize × index) mod len(answers)]
package daily

import (
	"strings"
	"time"
)

const msInDay = int64(24 * time.Hour / time.Millisecond)

// DefaultEpoch is the first puzzle day.
var DefaultEpoch = time.Date(2022, time.February, 14, 0, 0, 0, 0, time.UTC)

// DefaultStepSize walks the answer list in order.
const DefaultStepSize = 1

// Selector maps instants to puzzles.
type Selector struct {
	Epoch    time.Time
	StepSize int
}

// Puzzle is the daily puzzle for one day.
type Puzzle struct {
	Index    int       `json:"index"`
	Solution string    `json:"-"`
	Tomorrow time.Time `json:"tomorrow"` // when the next puzzle starts
}

// NewSelector returns a Selector, substituting defaults for zero values.
func NewSelector(epoch time.Time, stepSize int) Selector {
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	if stepSize == 0 {
		stepSize = DefaultStepSize
	}
	return Selector{Epoch: epoch, StepSize: stepSize}
}

// Index returns the whole number of days since the epoch, floored so that
// instants before the epoch get negative indices.
func (s Selector) Index(now time.Time) int {
	ms := now.UnixMilli() - s.Epoch.UnixMilli()
	idx := ms / msInDay
	if ms < 0 && ms%msInDay != 0 {
		idx--
	}
	return int(idx)
}

// Puzzle selects the puzzle for now from answers. answers must be non-empty.
func (s Selector) Puzzle(now time.Time, answers []string) Puzzle {
	idx := s.Index(now)
	n := len(answers)
	pos := (s.StepSize * idx) % n
	if pos < 0 {
		pos += n
	}
	return Puzzle{
		Index:    idx,
		Solution: strings.ToUpper(answers[pos]),
		Tomorrow: s.Epoch.Add(time.Duration(idx+1) * 24 * time.Hour),
	}
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
