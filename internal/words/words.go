// internal/words/words.go
//
// Provides candidate-pool management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files, the
//     sqlite cache, a generated source list, or embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪allowed).
//   - Supply RandomAnswer, IsAllowed, Alphabet and Validator.
//
// Word Lists:
//   - "answers": candidate solutions.
//   - "allowed": valid guesses (always includes answers).
//
// Load order (first match wins):
//   1. WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE both set → read both.
//   2. Only WORDS_ALLOWED_FILE set → use it for both lists.
//   3. Cache hit for (language, length).
//   4. WORDS_SOURCE_FILE or WORDS_SOURCE_URL set → Generate, then cache.
//   5. Embedded English 5-letter defaults.
//
// Constraints:
//   • Words are normalized with game.Normalize (uppercase, ' ' → '_').
//   • Only words of exactly Length letters are kept.

package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/assets"
	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

// ErrNoWordList is returned when no source yields a usable pool.
var ErrNoWordList = errors.New("words: no word list available")

// Cache persists generated pools between runs.
type Cache interface {
	LoadWordList(ctx context.Context, language string, length int) ([]string, error)
	SaveWordList(ctx context.Context, language string, length int, words []string) error
}

// Options selects where a pool comes from.
type Options struct {
	Language    string
	Length      int
	AnswersFile string
	AllowedFile string
	SourceFile  string
	SourceURL   string
	FilterRare  bool
}

// Pool is a loaded candidate pool for one language and word length.
type Pool struct {
	Language string
	Length   int

	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{}
	alphabet   game.Alphabet
}

// NewPool builds a pool; answers are always added to the allowed set.
func NewPool(language string, length int, answers, allowed []string) (*Pool, error) {
	answers = keepLength(answers, length)
	allowed = keepLength(allowed, length)
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: no %d letter %s answers", ErrNoWordList, length, language)
	}
	p := &Pool{
		Language:   language,
		Length:     length,
		answers:    answers,
		answersSet: toSet(answers),
		allowedSet: toSet(answers),
	}
	for _, w := range allowed {
		p.allowedSet[w] = struct{}{}
	}
	p.alphabet = game.LettersInAlphabet(p.Allowed())
	return p, nil
}

// Load resolves a pool following the documented load order.
// cache may be nil.
func Load(ctx context.Context, opts Options, cache Cache) (*Pool, error) {
	switch {
	case opts.AnswersFile != "" && opts.AllowedFile != "":
		ans, err := readWordFile(opts.AnswersFile, opts.Length)
		if err != nil {
			return nil, err
		}
		all, err := readWordFile(opts.AllowedFile, opts.Length)
		if err != nil {
			return nil, err
		}
		return NewPool(opts.Language, opts.Length, ans, all)

	case opts.AllowedFile != "":
		all, err := readWordFile(opts.AllowedFile, opts.Length)
		if err != nil {
			return nil, err
		}
		return NewPool(opts.Language, opts.Length, all, all)
	}

	if cache != nil {
		cached, err := cache.LoadWordList(ctx, opts.Language, opts.Length)
		if err != nil {
			log.Warn().Err(err).Str("language", opts.Language).Msg("read word cache")
		} else if len(cached) > 0 {
			log.Debug().Str("language", opts.Language).Int("words", len(cached)).Msg("word list from cache")
			return NewPool(opts.Language, opts.Length, cached, cached)
		}
	}

	if opts.SourceFile != "" || opts.SourceURL != "" {
		list, err := FromSource(ctx, opts)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			if err := cache.SaveWordList(ctx, opts.Language, opts.Length, list); err != nil {
				log.Warn().Err(err).Msg("save word cache")
			}
		}
		return NewPool(opts.Language, opts.Length, list, list)
	}

	return Embedded(opts.Language, opts.Length)
}

// Embedded returns the built-in English 5-letter pool.
func Embedded(language string, length int) (*Pool, error) {
	if length != 5 || (language != "" && !strings.EqualFold(language, "english")) {
		return nil, fmt.Errorf("%w: no built-in list for %d letter %s words", ErrNoWordList, length, language)
	}
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, err
	}
	all, err := assets.AllowedList()
	if err != nil {
		return nil, err
	}
	return NewPool("English", length, normalizeAll(ans), normalizeAll(all))
}

// FromSource builds a word list from opts.SourceFile or opts.SourceURL.
func FromSource(ctx context.Context, opts Options) ([]string, error) {
	var src io.ReadCloser
	if opts.SourceFile != "" {
		f, err := os.Open(opts.SourceFile)
		if err != nil {
			return nil, err
		}
		src = f
	} else {
		body, err := Fetch(ctx, opts.SourceURL)
		if err != nil {
			return nil, err
		}
		src = body
	}
	defer src.Close()

	list, err := Generate(src, opts.Length, opts.FilterRare)
	if err != nil {
		return nil, fmt.Errorf("generate %s word list: %w", opts.Language, err)
	}
	log.Info().Str("language", opts.Language).Int("length", opts.Length).Int("words", len(list)).Msg("generated word list")
	return list, nil
}

// readWordFile loads one word per line, normalized, keeping valid words of length n.
func readWordFile(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := game.Normalize(sc.Text())
		if validWord(w) && runeLen(w) == n {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func normalizeAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if w = game.Normalize(w); validWord(w) {
			out = append(out, w)
		}
	}
	return out
}

func keepLength(list []string, n int) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if runeLen(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// validWord reports whether w is made of letters and the separator only.
func validWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r != game.Separator && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func runeLen(s string) int { return len([]rune(s)) }

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// RandomAnswer returns a cryptographically random answer and its 1-based
// position in the answer list.
func (p *Pool) RandomAnswer() (int, string) {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(p.answers))))
	if err != nil {
		return 1, p.answers[0]
	}
	i := int(nBig.Int64())
	return i + 1, p.answers[i]
}

// Answers returns the answer list in load order.
func (p *Pool) Answers() []string { return p.answers }

// Allowed returns the allowed guesses, sorted.
func (p *Pool) Allowed() []string {
	out := make([]string, 0, len(p.allowedSet))
	for w := range p.allowedSet {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// IsAllowed reports whether w is a valid guess (answers ∪ allowed).
func (p *Pool) IsAllowed(w string) bool {
	_, ok := p.allowedSet[game.Normalize(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (p *Pool) IsAnswer(w string) bool {
	_, ok := p.answersSet[game.Normalize(w)]
	return ok
}

// Alphabet is the set of letters found in the allowed words.
func (p *Pool) Alphabet() game.Alphabet { return p.alphabet }

// Validator returns a guess validator bound to this pool.
func (p *Pool) Validator() *game.Validator {
	return game.NewValidator(p.Allowed(), p.alphabet).WithLength(p.Length)
}

// Stats returns counts of loaded words: (answers, allowed).
func (p *Pool) Stats() (answersCount int, allowedCount int) {
	return len(p.answers), len(p.allowedSet)
}
