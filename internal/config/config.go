// Package config loads runtime settings from the environment (and an
// optional .env file), then applies command-line flag overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

// Config holds every setting of the wordle binary.
type Config struct {
	LogLevel string `env:"LOG_LEVEL"`

	Language    string `env:"WORDLE_LANGUAGE" envDefault:"English"`
	WordLength  int    `env:"WORDLE_WORD_LENGTH" envDefault:"5"`
	MaxAttempts int    `env:"WORDLE_MAX_ATTEMPTS" envDefault:"0"`
	Daily       bool   `env:"WORDLE_DAILY"`
	DailySalt   string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	NoColor     bool   `env:"NO_COLOR"`

	Words struct {
		AnswersFile string `env:"WORDS_ANSWERS_FILE"`
		AllowedFile string `env:"WORDS_ALLOWED_FILE"`
		SourceFile  string `env:"WORDS_SOURCE_FILE"`
		SourceURL   string `env:"WORDS_SOURCE_URL"`
		CacheDB     string `env:"WORDS_CACHE_DB" envDefault:"./data/words.db"`
		FilterRare  bool   `env:"WORDS_FILTER_RARE" envDefault:"true"`
	}

	HTTP struct {
		Port         string        `env:"PORT" envDefault:"5175"`
		ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
		JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
		TokenTTL     time.Duration `env:"JWT_TTL" envDefault:"24h"`
	}
}

// Load reads .env (if present) and the environment, then parses args
// into fs. Flags override environment values.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&c.Language, "lang", c.Language, "language of the word list")
	fs.IntVar(&c.WordLength, "length", c.WordLength, "number of letters per word")
	fs.IntVar(&c.MaxAttempts, "attempts", c.MaxAttempts, "number of guesses (0 = derived from the word length)")
	fs.BoolVar(&c.Daily, "daily", c.Daily, "play the word of the day")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "disable ANSI colours")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Words.SourceFile, "source", c.Words.SourceFile, "source word list to generate the pool from")
	fs.StringVar(&c.Words.SourceURL, "source-url", c.Words.SourceURL, "URL of a source word list")
	fs.StringVar(&c.Words.CacheDB, "cache", c.Words.CacheDB, "word list cache database (empty disables the cache)")
	fs.BoolVar(&c.Words.FilterRare, "filter-rare", c.Words.FilterRare, "drop words containing rare letters when generating")
	fs.StringVar(&c.HTTP.Port, "port", c.HTTP.Port, "HTTP port for serve")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts(c.WordLength)
	}
	return c, c.Validate()
}

// Validate rejects settings the game cannot start with.
func (c Config) Validate() error {
	if c.WordLength <= 0 {
		return errors.New("word length must be positive")
	}
	if c.MaxAttempts <= 0 {
		return errors.New("max attempts must be positive")
	}
	if c.Language == "" {
		return errors.New("language must not be empty")
	}
	return nil
}

// DefaultMaxAttempts gives longer words a few extra tries:
// max(6, n + max(1, n/3)).
func DefaultMaxAttempts(n int) int {
	return max(6, n+max(1, n/3))
}

// WordOptions maps the config onto word-list loading options.
func (c Config) WordOptions() words.Options {
	return words.Options{
		Language:    c.Language,
		Length:      c.WordLength,
		AnswersFile: c.Words.AnswersFile,
		AllowedFile: c.Words.AllowedFile,
		SourceFile:  c.Words.SourceFile,
		SourceURL:   c.Words.SourceURL,
		FilterRare:  c.Words.FilterRare,
	}
}
