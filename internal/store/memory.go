// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for development/testing, or when durability is not required.
//
// Characteristics:
//   - Records are copied in and out so callers never share slices or maps.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/stats"
)

type sessionKey struct {
	player string
	mode   game.Mode
}

type resultKey struct {
	player string
	index  int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[sessionKey]SessionRecord
	prefs    map[string]Preferences
	stats    map[string]stats.Stats
	results  map[resultKey]DailyResult
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		sessions: make(map[sessionKey]SessionRecord),
		prefs:    make(map[string]Preferences),
		stats:    make(map[string]stats.Stats),
		results:  make(map[resultKey]DailyResult),
	}
}

func (m *memory) LoadSession(ctx context.Context, playerID string, mode game.Mode) (SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.sessions[sessionKey{playerID, mode}]
	if !ok {
		return SessionRecord{}, ErrNotFound
	}
	return SessionRecord{Solution: rec.Solution, Guesses: append([]string{}, rec.Guesses...)}, nil
}

func (m *memory) SaveSession(ctx context.Context, playerID string, mode game.Mode, rec SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionKey{playerID, mode}] = SessionRecord{
		Solution: rec.Solution,
		Guesses:  append([]string{}, rec.Guesses...),
	}
	return nil
}

func (m *memory) LoadPreferences(ctx context.Context, playerID string) (Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs[playerID], nil
}

func (m *memory) SavePreferences(ctx context.Context, playerID string, p Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[playerID] = p
	return nil
}

func (m *memory) LoadStats(ctx context.Context, playerID string) (stats.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.stats[playerID]
	s.GuessDistribution = lo.Assign(map[int]int{}, s.GuessDistribution)
	return s, nil
}

func (m *memory) SaveStats(ctx context.Context, playerID string, s stats.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.GuessDistribution = lo.Assign(map[int]int{}, s.GuessDistribution)
	m.stats[playerID] = s
	return nil
}

func (m *memory) RecordDailyResult(ctx context.Context, playerID string, r DailyResult, fold func(stats.Stats) stats.Stats) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := resultKey{playerID, r.PuzzleIndex}
	if _, ok := m.results[k]; ok {
		return false, nil
	}
	s := m.stats[playerID]
	s.GuessDistribution = lo.Assign(map[int]int{}, s.GuessDistribution)
	s = fold(s)
	s.GuessDistribution = lo.Assign(map[int]int{}, s.GuessDistribution)
	m.stats[playerID] = s
	m.results[k] = r
	return true, nil
}

func (m *memory) Close() error { return nil }
