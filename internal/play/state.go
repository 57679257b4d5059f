package play

import (
	"time"

	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/stats"
	"github.com/robalobadob/birdle/internal/store"
)

// State is what a client needs to draw the board.
type State struct {
	Mode        game.Mode         `json:"mode"`
	Outcome     game.Outcome      `json:"outcome"`
	Guesses     []string          `json:"guesses"`
	Board       [][]game.Status   `json:"board"`
	HardMode    bool              `json:"hardMode"`
	WordLength  int               `json:"wordLength"`
	MaxAttempts int               `json:"maxAttempts"`
	PuzzleIndex int               `json:"puzzleIndex"`
	Tomorrow    time.Time         `json:"tomorrow"`
	FirstPlay   bool              `json:"firstPlay"`          // no daily record existed; show help
	Solution    string            `json:"solution,omitempty"` // only once the game is over
	Preferences store.Preferences `json:"preferences"`
}

// Outcome is the result of Submit.
type Outcome struct {
	State   State       `json:"state"`
	Result  game.Result `json:"result"`
	Message string      `json:"message,omitempty"` // win/loss message on completion
}

// StatsView adds derived figures to stats.Stats.
type StatsView struct {
	stats.Stats
	SuccessRate int `json:"successRate"`
}

func (s *Service) view(cur *current) State {
	sess := cur.session
	st := State{
		Mode:        sess.Mode(),
		Outcome:     sess.Outcome(),
		Guesses:     sess.Guesses(),
		Board:       sess.Board(),
		HardMode:    sess.HardMode(),
		WordLength:  s.rules.WordLength,
		MaxAttempts: s.rules.MaxAttempts,
		PuzzleIndex: cur.puzzle.Index,
		Tomorrow:    cur.puzzle.Tomorrow,
		FirstPlay:   cur.firstPlay,
		Preferences: cur.prefs,
	}
	if sess.Outcome().Terminal() {
		st.Solution = sess.Solution()
	}
	return st
}
