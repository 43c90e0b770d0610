// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create new games from a solution and an attempt budget.
//   - Score guesses with Compute and append them to the history.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Word-list membership is checked by Validator, not here; the engine
//     only requires the guess to have the solution's length.
//   - Letter knowledge is merged by the caller from the returned row.
//   - A Game is owned by one session; it has no internal locking.
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Game holds the state of a single game session.
type Game struct {
	ID          string
	solution    string
	length      int
	maxAttempts int
	history     []Turn
	status      Status
}

// New constructs a game for solution with maxAttempts guesses.
// The solution is normalized the same way guesses are.
func New(solution string, maxAttempts int) (*Game, error) {
	solution = Normalize(solution)
	if solution == "" {
		return nil, fmt.Errorf("%w: empty solution", ErrInvalidConfig)
	}
	if maxAttempts <= 0 {
		return nil, fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, maxAttempts)
	}
	return &Game{
		ID:          uuid.NewString(),
		solution:    solution,
		length:      len([]rune(solution)),
		maxAttempts: maxAttempts,
		history:     make([]Turn, 0, maxAttempts),
	}, nil
}

// SubmitGuess scores a guess and applies it to the game.
// Returns the feedback row and the new status.
//
// State transitions:
//   - guess == solution → Won.
//   - else if the history is now full → Lost.
//
// A failed call leaves the game untouched.
func (g *Game) SubmitGuess(guess string) (FeedbackRow, Status, error) {
	if g.status.Over() {
		return nil, g.status, ErrGameAlreadyOver
	}
	guess = Normalize(guess)
	row, err := Compute(guess, g.solution)
	if err != nil {
		return nil, g.status, err
	}

	g.history = append(g.history, Turn{Guess: guess, Feedback: row})
	switch {
	case guess == g.solution:
		g.status = Won
	case len(g.history) >= g.maxAttempts:
		g.status = Lost
	}
	return row, g.status, nil
}

// RemainingAttempts is the number of guesses still allowed.
func (g *Game) RemainingAttempts() int { return g.maxAttempts - len(g.history) }

// History returns a copy of the accepted turns, oldest first.
func (g *Game) History() []Turn {
	out := make([]Turn, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Game) Status() Status    { return g.status }
func (g *Game) MaxAttempts() int  { return g.maxAttempts }
func (g *Game) WordLength() int   { return g.length }
func (g *Game) Solution() string  { return g.solution }
func (g *Game) AttemptsUsed() int { return len(g.history) }
