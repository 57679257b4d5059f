package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/birdle/internal/config"
	"github.com/robalobadob/birdle/internal/daily"
	"github.com/robalobadob/birdle/internal/game"
	"github.com/robalobadob/birdle/internal/httpserver"
	"github.com/robalobadob/birdle/internal/play"
	"github.com/robalobadob/birdle/internal/store"
	"github.com/robalobadob/birdle/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	catalog, err := words.Load(words.Sources{
		AnswersFile:     cfg.AnswersFile,
		AllowedFile:     cfg.AllowedFile,
		DefinitionsFile: cfg.DefinitionsFile,
		WordLength:      cfg.WordLength,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open store")
	}
	defer st.Close()

	svc := play.New(play.Options{
		Rules:      game.Rules{WordLength: cfg.WordLength, MaxAttempts: cfg.MaxAttempts},
		Catalog:    catalog,
		Selector:   daily.NewSelector(cfg.Epoch, cfg.StepSize),
		Store:      st,
		ShareTitle: cfg.ShareTitle,
		Rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	})
	srv := httpserver.New(httpserver.Options{
		Play:    svc,
		Catalog: catalog,
		Players: httpserver.PlayerTokens{
			Secret:     []byte(cfg.PlayerSecret),
			CookieName: cfg.CookieName,
			TTL:        cfg.PlayerTTL,
			Secure:     cfg.Production,
		},
		ClientOrigin:   cfg.ClientOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	hs := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Bool("sqlite", cfg.DatabasePath != "").Msg("starting birdle")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// openStore picks SQLite when a path is configured, memory otherwise.
func openStore(ctx context.Context, path string) (store.Store, error) {
	if path == "" {
		log.Warn().Msg("DATABASE_PATH not set; player state is kept in memory")
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(ctx, path)
}
