// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - LetterStatus: per-letter evaluation (unknown/absent/present/correct).
//   - Mark, FeedbackRow: the evaluation of one guess.
//   - Turn: one accepted guess together with its feedback.
//   - Status: coarse game state (playing/won/lost).
//   - Sentinel errors returned by the engine.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// Separator stands in for a space inside multi-word solutions.
const Separator = '_'

// LetterStatus represents what is known about a letter.
// Values are ordered by precedence: Correct > Present > Absent > Unknown.
type LetterStatus int

const (
	Unknown LetterStatus = iota // no evidence yet
	Absent                      // letter is not (or no longer) in the solution
	Present                     // letter is in the solution, elsewhere
	Correct                     // letter is in the solution at this position
)

var letterStatusNames = [...]string{"unknown", "absent", "present", "correct"}

func (s LetterStatus) String() string {
	if s < Unknown || s > Correct {
		return fmt.Sprintf("LetterStatus(%d)", int(s))
	}
	return letterStatusNames[s]
}

// MarshalText encodes the status by name so JSON payloads stay readable.
func (s LetterStatus) MarshalText() ([]byte, error) {
	if s < Unknown || s > Correct {
		return nil, fmt.Errorf("invalid letter status %d", int(s))
	}
	return []byte(letterStatusNames[s]), nil
}

// Mark is the evaluation result for a single position of a guess.
type Mark struct {
	Letter rune
	Status LetterStatus
}

// FeedbackRow holds one Mark per position of a guess.
type FeedbackRow []Mark

// Solved reports whether every mark in the row is Correct.
func (r FeedbackRow) Solved() bool {
	if len(r) == 0 {
		return false
	}
	for _, m := range r {
		if m.Status != Correct {
			return false
		}
	}
	return true
}

// Word reassembles the guess the row was computed for.
func (r FeedbackRow) Word() string {
	var b strings.Builder
	for _, m := range r {
		b.WriteRune(m.Letter)
	}
	return b.String()
}

// Turn is a single accepted guess and its feedback.
type Turn struct {
	Guess    string
	Feedback FeedbackRow
}

// Status is the coarse state of a game.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

// String mirrors the wire names used by the HTTP API.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Over reports whether the status is terminal.
func (s Status) Over() bool { return s == Won || s == Lost }

var (
	// ErrLengthMismatch is returned when a guess and the solution differ in length.
	ErrLengthMismatch = errors.New("guess length does not match solution")
	// ErrGameAlreadyOver is returned by SubmitGuess once the game is won or lost.
	ErrGameAlreadyOver = errors.New("game already over")
	// ErrInvalidConfig is returned by New for an empty solution or a non-positive budget.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrInvalidGuess is wrapped by every Validator rejection.
	ErrInvalidGuess = errors.New("invalid guess")
)

// Normalize converts raw player input to the canonical guess form:
// trimmed, uppercased, inner spaces replaced by Separator.
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", string(Separator))
}
