// internal/play/play.go
//
// Per-player orchestration of the game engine.
//
// The engine (package game) is pure; this package is its caller. Every
// action restores the player's session from the store and persists any change.
// A daily session's single transition into won/lost is folded into stats.
//
// Each player's actions are serialized by a per-player mutex so every action
// completes before the next one for that player starts.
package play

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/birdle/internal/daily"
	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/share"
	"github.com/robalobadob/birdle/internal/stats"
	"github.com/robalobadob/birdle/internal/store"
	"github.com/robalobadob/birdle/internal/words"
)

var (
	// ErrNotFinished is returned by Share while the session is still active.
	ErrNotFinished = errors.New("game not finished")
	// ErrNotPracticeMode is returned by NewPractice outside practice mode.
	ErrNotPracticeMode = errors.New("not in practice mode")
	// ErrInvalidTheme is returned by SetTheme for unknown themes.
	ErrInvalidTheme = errors.New("invalid theme")
)

// Options configures a Service.
type Options struct {
	Rules      game.Rules
	Catalog    *words.Catalog
	Selector   daily.Selector
	Store      store.Store
	ShareTitle string
	Now        func() time.Time // defaults to time.Now
	Rand       words.Rand       // practice words, win messages, random guesses
}

// Service runs games for many players.
type Service struct {
	rules      game.Rules
	catalog    *words.Catalog
	selector   daily.Selector
	store      store.Store
	shareTitle string
	now        func() time.Time

	rngMu sync.Mutex
	rng   words.Rand

	locksMu sync.Mutex
	locks   map[string]*playerLock
}

// playerLock is dropped from the table once no action holds or awaits it.
type playerLock struct {
	mu   sync.Mutex
	refs int
}

// New constructs a Service.
func New(opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		rules:      opts.Rules,
		catalog:    opts.Catalog,
		selector:   opts.Selector,
		store:      opts.Store,
		shareTitle: opts.ShareTitle,
		now:        now,
		rng:        opts.Rand,
		locks:      make(map[string]*playerLock),
	}
}

// lock serializes actions for one player.
func (s *Service) lock(playerID string) func() {
	s.locksMu.Lock()
	pl, ok := s.locks[playerID]
	if !ok {
		pl = &playerLock{}
		s.locks[playerID] = pl
	}
	pl.refs++
	s.locksMu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		s.locksMu.Lock()
		if pl.refs--; pl.refs == 0 {
			delete(s.locks, playerID)
		}
		s.locksMu.Unlock()
	}
}

func (s *Service) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.IntN(n)
}

// lockedRand exposes the service's random source to the catalog.
type lockedRand struct{ s *Service }

func (r lockedRand) IntN(n int) int { return r.s.intn(n) }

// current is the restored view of a player's active session.
type current struct {
	prefs     store.Preferences
	session   *game.Session
	puzzle    daily.Puzzle
	firstPlay bool
}

// load restores the session for the player's current mode.
func (s *Service) load(ctx context.Context, playerID string) (*current, error) {
	prefs, err := s.store.LoadPreferences(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	cur := &current{prefs: prefs, puzzle: s.todaysPuzzle()}

	if prefs.PracticeMode {
		cur.session, err = s.loadPractice(ctx, playerID, prefs.HardMode)
	} else {
		cur.session, cur.firstPlay, err = s.loadDaily(ctx, playerID, prefs.HardMode, cur.puzzle)
	}
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *Service) todaysPuzzle() daily.Puzzle {
	return s.selector.Puzzle(s.now(), s.catalog.Answers())
}

// loadDaily restores today's session. A record for another day, or one that
// cannot be replayed, is discarded silently and a fresh session starts.
func (s *Service) loadDaily(ctx context.Context, playerID string, hard bool, puzzle daily.Puzzle) (*game.Session, bool, error) {
	rec, err := s.store.LoadSession(ctx, playerID, game.ModeDaily)
	if errors.Is(err, store.ErrNotFound) {
		return game.NewSession(s.rules, s.catalog, puzzle.Solution, game.ModeDaily, hard), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load daily session: %w", err)
	}
	if rec.Solution != puzzle.Solution {
		log.Debug().Str("player", playerID).Int("puzzle", puzzle.Index).Msg("stale daily session discarded")
		return game.NewSession(s.rules, s.catalog, puzzle.Solution, game.ModeDaily, hard), false, nil
	}
	sess, err := game.Restore(s.rules, s.catalog, rec.Solution, game.ModeDaily, hard, rec.Guesses)
	if err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("daily session discarded")
		return game.NewSession(s.rules, s.catalog, puzzle.Solution, game.ModeDaily, hard), false, nil
	}
	return sess, false, nil
}

// loadPractice restores the practice session, starting one if needed.
func (s *Service) loadPractice(ctx context.Context, playerID string, hard bool) (*game.Session, error) {
	rec, err := s.store.LoadSession(ctx, playerID, game.ModePractice)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load practice session: %w", err)
	}
	if err == nil {
		sess, rerr := game.Restore(s.rules, s.catalog, rec.Solution, game.ModePractice, hard, rec.Guesses)
		if rerr == nil {
			return sess, nil
		}
		log.Warn().Err(rerr).Str("player", playerID).Msg("practice session discarded")
	}
	return s.startPractice(ctx, playerID, hard)
}

// startPractice creates and persists a fresh practice session.
func (s *Service) startPractice(ctx context.Context, playerID string, hard bool) (*game.Session, error) {
	solution := s.catalog.RandomWord(lockedRand{s})
	sess := game.NewSession(s.rules, s.catalog, solution, game.ModePractice, hard)
	if err := s.save(ctx, playerID, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) save(ctx context.Context, playerID string, sess *game.Session) error {
	rec := store.SessionRecord{Solution: sess.Solution(), Guesses: sess.Guesses()}
	if err := s.store.SaveSession(ctx, playerID, sess.Mode(), rec); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// State returns the player's current view, restoring or starting a session.
func (s *Service) State(ctx context.Context, playerID string) (State, error) {
	defer s.lock(playerID)()
	cur, err := s.load(ctx, playerID)
	if err != nil {
		return State{}, err
	}
	return s.view(cur), nil
}

// Submit applies a guess to the player's current session.
//
// Rejections (see game.Session.Submit) come back as the error together
// with the unchanged state; callers show game.Notice(err). Accepted
// guesses are persisted before Submit returns.
func (s *Service) Submit(ctx context.Context, playerID, guess string) (Outcome, error) {
	defer s.lock(playerID)()
	cur, err := s.load(ctx, playerID)
	if err != nil {
		return Outcome{}, err
	}

	res, err := cur.session.Submit(guess)
	if err != nil {
		return Outcome{State: s.view(cur)}, err
	}
	// The result is recorded before the session is saved. If the save
	// fails the player can resubmit and the ledger keeps stats exact.
	if res.Completed && cur.session.Mode() == game.ModeDaily {
		if err := s.recordDaily(ctx, playerID, cur); err != nil {
			return Outcome{}, err
		}
	}
	if err := s.save(ctx, playerID, cur.session); err != nil {
		return Outcome{}, err
	}

	out := Outcome{Result: res}
	if res.Completed {
		if res.Outcome == game.OutcomeWon {
			out.Message = game.WinMessage(s.intn)
		} else {
			sol := cur.session.Solution()
			out.Message = game.LossMessage(sol, s.catalog.Definition(sol))
		}
		log.Info().Str("player", playerID).Str("mode", string(cur.session.Mode())).
			Str("outcome", string(res.Outcome)).Int("attempts", res.Attempts).Msg("game finished")
	}
	out.State = s.view(cur)
	return out, nil
}

// recordDaily folds a finished daily session into stats, once per puzzle.
// The ledger row and the stats update are written together by the store.
func (s *Service) recordDaily(ctx context.Context, playerID string, cur *current) error {
	sess := cur.session
	won := sess.Outcome() == game.OutcomeWon
	attempts := sess.Attempts()
	if !won {
		attempts = s.rules.MaxAttempts
	}

	fresh, err := s.store.RecordDailyResult(ctx, playerID, store.DailyResult{
		PuzzleIndex: cur.puzzle.Index,
		Date:        daily.DateKey(s.now()),
		Attempts:    attempts,
		Won:         won,
	}, func(st stats.Stats) stats.Stats {
		return stats.RecordCompletedGame(st, attempts, won)
	})
	if err != nil {
		return fmt.Errorf("record daily result: %w", err)
	}
	if !fresh {
		log.Warn().Str("player", playerID).Int("puzzle", cur.puzzle.Index).Msg("daily result already recorded")
	}
	return nil
}

// Settings carries the preferences to change; nil fields are left alone.
type Settings struct {
	HardMode     *bool
	PracticeMode *bool
	Theme        *string
	HighContrast *bool
}

// UpdateSettings validates every requested change before writing any.
//
// Entering practice always starts a new practice session; returning to
// daily restores today's daily session. Enabling hard mode is checked
// against the session the player ends up in and fails with
// game.ErrHardModeLocked once that session has a guess; the returned state
// is then the unchanged current one.
func (s *Service) UpdateSettings(ctx context.Context, playerID string, in Settings) (State, error) {
	defer s.lock(playerID)()
	prefs, err := s.store.LoadPreferences(ctx, playerID)
	if err != nil {
		return State{}, fmt.Errorf("load preferences: %w", err)
	}
	next := prefs
	if in.Theme != nil {
		if t := *in.Theme; t != "" && t != store.ThemeDark && t != store.ThemeLight {
			return State{}, ErrInvalidTheme
		}
		next.Theme = *in.Theme
	}
	if in.HighContrast != nil {
		next.HighContrast = *in.HighContrast
	}
	if in.PracticeMode != nil {
		next.PracticeMode = *in.PracticeMode
	}
	enteringPractice := next.PracticeMode && !prefs.PracticeMode

	if in.HardMode != nil {
		if *in.HardMode && !prefs.HardMode && !enteringPractice {
			if err := s.checkHardMode(ctx, playerID, next); err != nil {
				if errors.Is(err, game.ErrHardModeLocked) {
					cur, lerr := s.load(ctx, playerID)
					if lerr != nil {
						return State{}, lerr
					}
					return s.view(cur), err
				}
				return State{}, err
			}
		}
		next.HardMode = *in.HardMode
	}

	if next != prefs {
		if err := s.store.SavePreferences(ctx, playerID, next); err != nil {
			return State{}, fmt.Errorf("save preferences: %w", err)
		}
	}
	if enteringPractice {
		if _, err := s.startPractice(ctx, playerID, next.HardMode); err != nil {
			return State{}, err
		}
	}
	cur, err := s.load(ctx, playerID)
	if err != nil {
		return State{}, err
	}
	return s.view(cur), nil
}

// checkHardMode reports whether hard mode may be enabled on the session
// selected by prefs.
func (s *Service) checkHardMode(ctx context.Context, playerID string, prefs store.Preferences) error {
	var sess *game.Session
	var err error
	if prefs.PracticeMode {
		sess, err = s.loadPractice(ctx, playerID, false)
	} else {
		sess, _, err = s.loadDaily(ctx, playerID, false, s.todaysPuzzle())
	}
	if err != nil {
		return err
	}
	return sess.SetHardMode(true)
}

// SetHardMode changes the standing hard-mode preference.
func (s *Service) SetHardMode(ctx context.Context, playerID string, on bool) (State, error) {
	return s.UpdateSettings(ctx, playerID, Settings{HardMode: &on})
}

// SetPracticeMode switches between daily and practice play.
func (s *Service) SetPracticeMode(ctx context.Context, playerID string, on bool) (State, error) {
	return s.UpdateSettings(ctx, playerID, Settings{PracticeMode: &on})
}

// NewPractice replaces the practice session with a fresh random word.
func (s *Service) NewPractice(ctx context.Context, playerID string) (State, error) {
	defer s.lock(playerID)()
	prefs, err := s.store.LoadPreferences(ctx, playerID)
	if err != nil {
		return State{}, fmt.Errorf("load preferences: %w", err)
	}
	if !prefs.PracticeMode {
		return State{}, ErrNotPracticeMode
	}
	sess, err := s.startPractice(ctx, playerID, prefs.HardMode)
	if err != nil {
		return State{}, err
	}
	return s.view(&current{prefs: prefs, session: sess, puzzle: s.todaysPuzzle()}), nil
}

// SetTheme stores the theme preference ("dark", "light" or "" for system).
func (s *Service) SetTheme(ctx context.Context, playerID, theme string) (store.Preferences, error) {
	st, err := s.UpdateSettings(ctx, playerID, Settings{Theme: &theme})
	return st.Preferences, err
}

// SetHighContrast stores the contrast preference.
func (s *Service) SetHighContrast(ctx context.Context, playerID string, on bool) (store.Preferences, error) {
	st, err := s.UpdateSettings(ctx, playerID, Settings{HighContrast: &on})
	return st.Preferences, err
}

// Stats returns the player's cumulative daily statistics with every
// distribution bucket from 1 to MaxAttempts present.
func (s *Service) Stats(ctx context.Context, playerID string) (StatsView, error) {
	st, err := s.store.LoadStats(ctx, playerID)
	if err != nil {
		return StatsView{}, fmt.Errorf("load stats: %w", err)
	}
	st.GuessDistribution = lo.Assign(stats.New(s.rules.MaxAttempts).GuessDistribution, st.GuessDistribution)
	return StatsView{Stats: st, SuccessRate: st.SuccessRate()}, nil
}

// Share renders the finished session as share text.
func (s *Service) Share(ctx context.Context, playerID string) (string, error) {
	defer s.lock(playerID)()
	cur, err := s.load(ctx, playerID)
	if err != nil {
		return "", err
	}
	sess := cur.session
	if !sess.Outcome().Terminal() {
		return "", ErrNotFinished
	}
	return share.Encode(share.Input{
		Guesses:     sess.Guesses(),
		Solution:    sess.Solution(),
		Label:       share.Label(s.shareTitle, sess.Mode(), cur.puzzle.Index),
		Lost:        sess.Outcome() == game.OutcomeLost,
		HardMode:    sess.HardMode(),
		MaxAttempts: s.rules.MaxAttempts,
	}), nil
}

// RandomGuess suggests any valid word; the player still has to submit it.
func (s *Service) RandomGuess() string {
	return s.catalog.RandomGuess(lockedRand{s})
}
