// main.go
//
// Entry point for the wordle binary.
//   - wordle [play] [flags]  → interactive game on the terminal (default).
//   - wordle serve [flags]   → JSON API, one session per game.
//   - wordle generate [flags] → rebuild the cached word list from a source.
//
// Settings come from the environment (.env is honoured) and are
// overridden by flags; see internal/config.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/config"
	"github.com/robalobadob/wordle/apps/go-cli/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-cli/internal/session"
	"github.com/robalobadob/wordle/apps/go-cli/internal/store"
	"github.com/robalobadob/wordle/apps/go-cli/internal/terminal"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

func main() {
	cmd, args := "play", os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "play", "serve", "generate":
			cmd, args = args[0], args[1:]
		}
	}

	fs := flag.NewFlagSet("wordle "+cmd, flag.ExitOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordle:", err)
		os.Exit(2)
	}
	setupLogging(cmd, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "serve":
		err = serve(ctx, cfg)
	case "generate":
		err = generate(ctx, cfg)
	default:
		err = play(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("cmd", cmd).Msg("wordle failed")
		stop()
		os.Exit(1)
	}
}

// setupLogging keeps the terminal quiet while playing: console output on
// stderr at warn unless asked otherwise. serve logs JSON at info.
func setupLogging(cmd, level string) {
	def := zerolog.InfoLevel
	if cmd == "play" {
		def = zerolog.WarnLevel
	}
	if cmd != "serve" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.SetGlobalLevel(def)
	if level == "" {
		return
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", level).Msg("unknown log level")
	}
}

// loadPool opens the word cache (unless disabled) and resolves the pool.
func loadPool(ctx context.Context, cfg config.Config) (*words.Pool, error) {
	var cache words.Cache
	if cfg.Words.CacheDB != "" {
		wc, err := store.OpenWordCache(ctx, cfg.Words.CacheDB)
		if err != nil {
			log.Warn().Err(err).Str("db", cfg.Words.CacheDB).Msg("word cache unavailable")
		} else {
			defer wc.Close()
			cache = wc
		}
	}
	pool, err := words.Load(ctx, cfg.WordOptions(), cache)
	if err != nil {
		return nil, err
	}
	answers, allowed := pool.Stats()
	log.Info().
		Str("language", cfg.Language).
		Int("length", cfg.WordLength).
		Int("answers", answers).
		Int("allowed", allowed).
		Msg("word list loaded")
	return pool, nil
}

func play(ctx context.Context, cfg config.Config) error {
	pool, err := loadPool(ctx, cfg)
	if err != nil {
		return err
	}

	var s *session.Session
	if cfg.Daily {
		s, err = session.NewDaily(pool, cfg.MaxAttempts, time.Now(), cfg.DailySalt)
	} else {
		s, err = session.New(pool, cfg.MaxAttempts)
	}
	if err != nil {
		return err
	}
	log.Debug().Str("game", s.ID).Int("number", s.Number).Msg("game started")

	_, err = terminal.Play(ctx, s, os.Stdin, terminal.NewRenderer(os.Stdout, cfg.NoColor))
	return err
}

func serve(ctx context.Context, cfg config.Config) error {
	pool, err := loadPool(ctx, cfg)
	if err != nil {
		return err
	}
	srv := httpserver.New(store.NewMemoryStore(), pool, httpserver.Options{
		MaxAttempts:  cfg.MaxAttempts,
		DailySalt:    cfg.DailySalt,
		JWTSecret:    cfg.HTTP.JWTSecret,
		TokenTTL:     cfg.HTTP.TokenTTL,
		ClientOrigin: cfg.HTTP.ClientOrigin,
	})
	addr := ":" + cfg.HTTP.Port
	log.Info().Str("addr", addr).Msg("starting wordle server")
	return srv.Start(ctx, addr)
}

// generate rebuilds the word list from the configured source and stores
// it in the cache, replacing whatever was there.
func generate(ctx context.Context, cfg config.Config) error {
	opts := cfg.WordOptions()
	if opts.SourceFile == "" && opts.SourceURL == "" {
		return errors.New("generate needs -source or -source-url")
	}
	if cfg.Words.CacheDB == "" {
		return errors.New("generate needs a cache database (-cache)")
	}

	list, err := words.FromSource(ctx, opts)
	if err != nil {
		return err
	}
	wc, err := store.OpenWordCache(ctx, cfg.Words.CacheDB)
	if err != nil {
		return err
	}
	defer wc.Close()
	if err := wc.SaveWordList(ctx, cfg.Language, cfg.WordLength, list); err != nil {
		return err
	}
	log.Info().
		Str("language", cfg.Language).
		Int("length", cfg.WordLength).
		Int("words", len(list)).
		Str("db", cfg.Words.CacheDB).
		Msg("word list cached")
	return nil
}
