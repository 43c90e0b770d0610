package game

import (
	"fmt"
)

// RejectError describes why a guess was not accepted.
// It wraps ErrInvalidGuess.
type RejectError struct {
	Guess  string
	Reason string
}

func (e *RejectError) Error() string { return e.Guess + ": " + e.Reason }
func (e *RejectError) Unwrap() error { return ErrInvalidGuess }

// Validator checks player input before it reaches the engine.
type Validator struct {
	length   int
	allowed  map[string]struct{}
	alphabet Alphabet
}

// NewValidator builds a validator over the allowed words and alphabet.
// The expected length defaults to the length of the first allowed word;
// use WithLength to pin it explicitly.
func NewValidator(allowedWords []string, alphabet Alphabet) *Validator {
	v := &Validator{
		allowed:  make(map[string]struct{}, len(allowedWords)),
		alphabet: alphabet,
	}
	for _, w := range allowedWords {
		w = Normalize(w)
		if v.length == 0 {
			v.length = len([]rune(w))
		}
		v.allowed[w] = struct{}{}
	}
	return v
}

// WithLength overrides the expected guess length.
func (v *Validator) WithLength(n int) *Validator {
	v.length = n
	return v
}

// Length is the expected guess length.
func (v *Validator) Length() int { return v.length }

// Alphabet is the set of letters the validator accepts.
func (v *Validator) Alphabet() Alphabet { return v.alphabet }

// IsAcceptable reports whether guess may be submitted.
// Rejections are ordinary, recoverable results: the error wraps
// ErrInvalidGuess and is a *RejectError carrying the reason.
func (v *Validator) IsAcceptable(guess string) (bool, error) {
	guess = Normalize(guess)
	if n := len([]rune(guess)); n != v.length {
		return false, &RejectError{Guess: guess, Reason: fmt.Sprintf("must be %d letters long, got %d", v.length, n)}
	}
	for _, r := range guess {
		if !v.alphabet.Contains(r) {
			return false, &RejectError{Guess: guess, Reason: fmt.Sprintf("letter %q is not allowed", r)}
		}
	}
	if _, ok := v.allowed[guess]; !ok {
		return false, &RejectError{Guess: guess, Reason: "is not a valid word"}
	}
	return true, nil
}
