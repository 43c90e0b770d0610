// Package session binds one game to the pool it was drawn from.
//
// A Session is the caller the engine expects: it validates raw input,
// submits accepted guesses and merges each returned FeedbackRow into the
// session's letter knowledge. Every session owns its own Game; nothing is
// shared between sessions.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-cli/internal/daily"
	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
	"github.com/robalobadob/wordle/apps/go-cli/internal/words"
)

// Session is a single game plus everything needed to play and render it.
type Session struct {
	mu sync.Mutex

	ID        string
	Language  string
	Date      string // set for daily games
	Number    int    // 1-based position of the solution in the answer list
	PoolSize  int
	CreatedAt time.Time

	game      *game.Game
	knowledge *game.Knowledge
	validator *game.Validator
	alphabet  game.Alphabet
}

// New starts a game with a random answer from pool.
func New(pool *words.Pool, maxAttempts int) (*Session, error) {
	n, w := pool.RandomAnswer()
	return start(pool, w, n, maxAttempts)
}

// NewDaily starts the game of the day for now.
func NewDaily(pool *words.Pool, maxAttempts int, now time.Time, salt string) (*Session, error) {
	i, w := daily.Pick(now, salt, pool.Answers())
	s, err := start(pool, w, i+1, maxAttempts)
	if err != nil {
		return nil, err
	}
	s.Date = daily.DateKey(now)
	return s, nil
}

// NewWithSolution starts a game with a fixed solution.
func NewWithSolution(pool *words.Pool, solution string, maxAttempts int) (*Session, error) {
	return start(pool, solution, 0, maxAttempts)
}

func start(pool *words.Pool, solution string, number, maxAttempts int) (*Session, error) {
	g, err := game.New(solution, maxAttempts)
	if err != nil {
		return nil, err
	}
	answers, _ := pool.Stats()
	return &Session{
		ID:        g.ID,
		Language:  pool.Language,
		Number:    number,
		PoolSize:  answers,
		CreatedAt: time.Now().UTC(),
		game:      g,
		knowledge: game.NewKnowledge(),
		validator: pool.Validator(),
		alphabet:  pool.Alphabet(),
	}, nil
}

// Play validates raw input and, if accepted, submits it.
// Rejected input returns an error wrapping game.ErrInvalidGuess and
// leaves the session unchanged.
func (s *Session) Play(raw string) (game.FeedbackRow, game.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st := s.game.Status(); st.Over() {
		return nil, st, game.ErrGameAlreadyOver
	}
	if ok, err := s.validator.IsAcceptable(raw); !ok {
		return nil, s.game.Status(), err
	}
	row, st, err := s.game.SubmitGuess(raw)
	if err != nil {
		return nil, st, err
	}
	s.knowledge.Merge(row)
	return row, st, nil
}

// IsRejection reports whether err is an ordinary "try again" rejection.
func IsRejection(err error) bool { return errors.Is(err, game.ErrInvalidGuess) }

// View is a consistent copy of the session state for rendering.
type View struct {
	ID          string
	Language    string
	Date        string
	Length      int
	MaxAttempts int
	Remaining   int
	Status      game.Status
	History     []game.Turn
	Letters     map[string]game.LetterStatus
	Solution    string // empty until the game is over
}

// View snapshots the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:          s.ID,
		Language:    s.Language,
		Date:        s.Date,
		Length:      s.game.WordLength(),
		MaxAttempts: s.game.MaxAttempts(),
		Remaining:   s.game.RemainingAttempts(),
		Status:      s.game.Status(),
		History:     s.game.History(),
		Letters:     s.knowledge.Snapshot(),
	}
	if v.Status.Over() {
		v.Solution = s.game.Solution()
	}
	return v
}

// StatusOf is the best-known status of letter.
func (s *Session) StatusOf(letter rune) game.LetterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.knowledge.StatusOf(letter)
}

// Alphabet is the set of letters accepted in this session.
func (s *Session) Alphabet() game.Alphabet { return s.alphabet }

// Solution reveals the answer; front ends show it once the game is over.
func (s *Session) Solution() string { return s.game.Solution() }
