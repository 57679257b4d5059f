// internal/httpserver/routes_game.go
//
// HTTP routes for playing.
//   - GET  /game              → current state (restores or starts a session)
//   - POST /game/guess        → submit a guess
//   - POST /game/practice     → new practice word (practice mode only)
//   - GET  /game/random-guess → a random valid word to type in
//   - POST /settings          → hard mode, practice mode, theme, contrast
//   - GET  /stats             → cumulative daily stats
//   - GET  /share             → share text for a finished game
//
// Rejected guesses come back as 400 with {"error", "message", "state"};
// "message" is the text to show the player.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/play"
)

// mountGame registers the player routes. limit wraps state-changing routes.
func (s *Server) mountGame(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/game", s.handleState)
	r.Get("/game/random-guess", s.handleRandomGuess)
	r.Get("/stats", s.handleStats)
	r.Get("/share", s.handleShare)

	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Post("/game/guess", s.handleGuess)
		r.Post("/game/practice", s.handleNewPractice)
		r.Post("/settings", s.handleSettings)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.play.State(r.Context(), playerID(r))
	if err != nil {
		s.fail(w, r, err, nil)
		return
	}
	writeJSON(w, st)
}

type guessReq struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	out, err := s.play.Submit(r.Context(), playerID(r), req.Guess)
	switch {
	case errors.Is(err, game.ErrSessionTerminal):
		// finished games ignore input
		writeJSON(w, out)
	case err != nil:
		s.fail(w, r, err, out.State)
	default:
		writeJSON(w, out)
	}
}

func (s *Server) handleNewPractice(w http.ResponseWriter, r *http.Request) {
	st, err := s.play.NewPractice(r.Context(), playerID(r))
	if err != nil {
		s.fail(w, r, err, nil)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleRandomGuess(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"guess": s.play.RandomGuess()})
}

// settingsReq carries only the settings being changed.
type settingsReq struct {
	HardMode     *bool   `json:"hardMode"`
	PracticeMode *bool   `json:"practiceMode"`
	Theme        *string `json:"theme"`
	HighContrast *bool   `json:"highContrast"`
}

// handleSettings applies all requested settings or none of them.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	st, err := s.play.UpdateSettings(r.Context(), playerID(r), play.Settings{
		HardMode:     req.HardMode,
		PracticeMode: req.PracticeMode,
		Theme:        req.Theme,
		HighContrast: req.HighContrast,
	})
	if errors.Is(err, game.ErrHardModeLocked) {
		s.fail(w, r, err, st)
		return
	}
	if err != nil {
		s.fail(w, r, err, nil)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.play.Stats(r.Context(), playerID(r))
	if err != nil {
		s.fail(w, r, err, nil)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	text, err := s.play.Share(r.Context(), playerID(r))
	if err != nil {
		s.fail(w, r, err, nil)
		return
	}
	writeJSON(w, map[string]string{"text": text, "message": game.NoticeShareCopied})
}

// fail maps service errors to HTTP responses. Rejections carry the
// player-facing notice; anything else is logged and reported as 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, state any) {
	var pv *game.PositionViolation
	var cv *game.ContainmentViolation
	switch {
	case errors.Is(err, game.ErrIncompleteGuess):
		writeErrorState(w, http.StatusBadRequest, "incomplete_guess", game.Notice(err), state)
	case errors.Is(err, game.ErrUnknownWord):
		writeErrorState(w, http.StatusBadRequest, "unknown_word", game.Notice(err), state)
	case errors.As(err, &pv), errors.As(err, &cv):
		writeErrorState(w, http.StatusBadRequest, "hard_mode_violation", game.Notice(err), state)
	case errors.Is(err, game.ErrHardModeLocked):
		writeErrorState(w, http.StatusConflict, "hard_mode_locked", game.Notice(err), state)
	case errors.Is(err, play.ErrNotFinished):
		writeError(w, http.StatusConflict, "not_finished", "")
	case errors.Is(err, play.ErrNotPracticeMode):
		writeError(w, http.StatusConflict, "not_practice_mode", "")
	case errors.Is(err, play.ErrInvalidTheme):
		writeError(w, http.StatusBadRequest, "invalid_theme", "")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("player", playerID(r)).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "")
	}
}
