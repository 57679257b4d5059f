// internal/store/store.go
//
// Persistence for player state. The engine decides what is read and
// written; implementations decide how.
//
// Records:
//   - SessionRecord: {solution, guesses} per (player, mode). Outcome is never
//     stored; it is recomputed from the guesses on load.
//   - Preferences: hard mode, practice mode, theme, contrast.
//   - Stats: cumulative daily statistics.
//   - Daily results: one row per (player, puzzle index), used to make stats
//     recording happen at most once per puzzle.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/stats"
)

// ErrNotFound is returned when a session record does not exist.
var ErrNotFound = errors.New("not found")

// SessionRecord is the persisted shape of a session.
type SessionRecord struct {
	Solution string   `json:"solution"`
	Guesses  []string `json:"guesses"`
}

// Theme values; "" means follow the client's preference.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Preferences are standing per-player settings.
type Preferences struct {
	HardMode     bool   `json:"hardMode"`
	PracticeMode bool   `json:"practiceMode"`
	Theme        string `json:"theme"`
	HighContrast bool   `json:"highContrast"`
}

// DailyResult is a finished daily puzzle.
type DailyResult struct {
	PuzzleIndex int
	Date        string // YYYY-MM-DD (UTC)
	Attempts    int
	Won         bool
}

// Store defines the persistence interface.
// Implementations may be backed by memory (NewMemoryStore) or SQLite (OpenSQLite).
type Store interface {
	// LoadSession returns ErrNotFound when nothing was saved for (player, mode).
	LoadSession(ctx context.Context, playerID string, mode game.Mode) (SessionRecord, error)
	SaveSession(ctx context.Context, playerID string, mode game.Mode, rec SessionRecord) error

	// LoadPreferences returns zero preferences for unknown players.
	LoadPreferences(ctx context.Context, playerID string) (Preferences, error)
	SavePreferences(ctx context.Context, playerID string, p Preferences) error

	// LoadStats returns zero stats for unknown players.
	LoadStats(ctx context.Context, playerID string) (stats.Stats, error)
	SaveStats(ctx context.Context, playerID string, s stats.Stats) error

	// RecordDailyResult stores r unless a result for the same puzzle exists,
	// and in the same step replaces the player's stats with fold(stats).
	// It reports whether r was newly recorded; either both writes happen or
	// neither does.
	RecordDailyResult(ctx context.Context, playerID string, r DailyResult, fold func(stats.Stats) stats.Stats) (bool, error)

	Close() error
}
