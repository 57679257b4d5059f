// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Reading/writing sessions, preferences, stats and the daily results ledger.
//
// Guesses and the guess distribution are stored as JSON text columns.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/stats"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db *sql.DB
}

/**
 * OpenSQLite opens (and creates if missing) a SQLite database file and
 * brings its schema up to date.
 *
 * @param path Database file path (e.g. ./data/birdle.db).
 * @returns Store backed by the database.
 */
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, migrationsFS); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

/**
 * openDB opens a SQLite database file.
 *
 * - Ensures parent directory exists for relative paths (e.g. ./data/birdle.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Enforces foreign keys.
 */
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

/**
 * migrate applies SQL migrations from the sql directory of fsys.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each *.sql file in lexical order, each in its own transaction.
 * - Skips files already applied.
 */
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ------------------------------ sessions -------------------------------- */

func (s *sqliteStore) LoadSession(ctx context.Context, playerID string, mode game.Mode) (SessionRecord, error) {
	var rec SessionRecord
	var guesses string
	err := s.db.QueryRowContext(ctx,
		`SELECT solution, guesses FROM sessions WHERE player_id=? AND mode=?`,
		playerID, string(mode),
	).Scan(&rec.Solution, &guesses)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, ErrNotFound
	}
	if err != nil {
		return SessionRecord{}, err
	}
	if err := json.Unmarshal([]byte(guesses), &rec.Guesses); err != nil {
		return SessionRecord{}, fmt.Errorf("decode guesses: %w", err)
	}
	return rec, nil
}

func (s *sqliteStore) SaveSession(ctx context.Context, playerID string, mode game.Mode, rec SessionRecord) error {
	guesses := rec.Guesses
	if guesses == nil {
		guesses = []string{}
	}
	b, err := json.Marshal(guesses)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions (player_id, mode, solution, guesses, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(player_id, mode) DO UPDATE SET
            solution=excluded.solution,
            guesses=excluded.guesses,
            updated_at=excluded.updated_at`,
		playerID, string(mode), rec.Solution, string(b), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

/* ---------------------------- preferences ------------------------------- */

func (s *sqliteStore) LoadPreferences(ctx context.Context, playerID string) (Preferences, error) {
	var p Preferences
	err := s.db.QueryRowContext(ctx,
		`SELECT hard_mode, practice_mode, theme, high_contrast FROM preferences WHERE player_id=?`,
		playerID,
	).Scan(&p.HardMode, &p.PracticeMode, &p.Theme, &p.HighContrast)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{}, nil
	}
	return p, err
}

func (s *sqliteStore) SavePreferences(ctx context.Context, playerID string, p Preferences) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO preferences (player_id, hard_mode, practice_mode, theme, high_contrast)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            hard_mode=excluded.hard_mode,
            practice_mode=excluded.practice_mode,
            theme=excluded.theme,
            high_contrast=excluded.high_contrast`,
		playerID, p.HardMode, p.PracticeMode, p.Theme, p.HighContrast,
	)
	return err
}

/* ------------------------------- stats ---------------------------------- */

// querier is the part of *sql.DB and *sql.Tx the stats helpers need.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *sqliteStore) LoadStats(ctx context.Context, playerID string) (stats.Stats, error) {
	return loadStats(ctx, s.db, playerID)
}

func (s *sqliteStore) SaveStats(ctx context.Context, playerID string, st stats.Stats) error {
	return saveStats(ctx, s.db, playerID, st)
}

func loadStats(ctx context.Context, q querier, playerID string) (stats.Stats, error) {
	var st stats.Stats
	var dist string
	err := q.QueryRowContext(ctx, `
        SELECT total_played, total_won, current_streak, max_streak, guess_distribution
        FROM stats WHERE player_id=?`, playerID,
	).Scan(&st.TotalPlayed, &st.TotalWon, &st.CurrentStreak, &st.MaxStreak, &dist)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.Stats{}, nil
	}
	if err != nil {
		return stats.Stats{}, err
	}
	if err := json.Unmarshal([]byte(dist), &st.GuessDistribution); err != nil {
		return stats.Stats{}, fmt.Errorf("decode distribution: %w", err)
	}
	return st, nil
}

func saveStats(ctx context.Context, q querier, playerID string, st stats.Stats) error {
	dist := st.GuessDistribution
	if dist == nil {
		dist = map[int]int{}
	}
	b, err := json.Marshal(dist)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, `
        INSERT INTO stats (player_id, total_played, total_won, current_streak, max_streak, guess_distribution)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            total_played=excluded.total_played,
            total_won=excluded.total_won,
            current_streak=excluded.current_streak,
            max_streak=excluded.max_streak,
            guess_distribution=excluded.guess_distribution`,
		playerID, st.TotalPlayed, st.TotalWon, st.CurrentStreak, st.MaxStreak, string(b),
	)
	return err
}

/* --------------------------- daily results ------------------------------ */

/**
 * RecordDailyResult inserts a result row and folds it into stats.
 *
 * - Respects UNIQUE(player_id, puzzle_index).
 * - If a row already exists nothing changes and false is returned.
 * - The ledger row and the stats update commit in one transaction.
 */
func (s *sqliteStore) RecordDailyResult(ctx context.Context, playerID string, r DailyResult, fold func(stats.Stats) stats.Stats) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (player_id, puzzle_index, date, attempts, won)
        VALUES (?, ?, ?, ?, ?)`,
		playerID, r.PuzzleIndex, r.Date, r.Attempts, r.Won,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n != 1 {
		return false, nil
	}

	st, err := loadStats(ctx, tx, playerID)
	if err != nil {
		return false, fmt.Errorf("load stats: %w", err)
	}
	if err := saveStats(ctx, tx, playerID, fold(st)); err != nil {
		return false, fmt.Errorf("save stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
