package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
	"github.com/robalobadob/wordle/apps/go-cli/internal/session"
)

const defaultMessage = "Type a word and\n press ENTER to guess!"

// Play runs one game reading guesses line by line from in.
// It returns the final status; InProgress means the player stopped
// (end of input or ctx cancelled) before the game ended.
func Play(ctx context.Context, s *session.Session, in io.Reader, r *Renderer) (game.Status, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, errs := readLines(ctx, in)

	v := s.View()
	r.Welcome(s.Language, v.Length, v.MaxAttempts)
	r.Board(v)
	r.Message(defaultMessage)
	r.Alphabet(s.Language, s.Alphabet(), s.StatusOf)

	for {
		var line string
		select {
		case <-ctx.Done():
			return s.View().Status, ctx.Err()
		case err := <-errs:
			return s.View().Status, err
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return s.View().Status, err
				default:
					return s.View().Status, nil
				}
			}
			line = l
		}
		if game.Normalize(line) == "" {
			continue
		}

		row, st, err := s.Play(line)
		var rej *game.RejectError
		switch {
		case errors.As(err, &rej):
			log.Debug().Str("guess", rej.Guess).Str("reason", rej.Reason).Msg("guess rejected")
			r.Message(fmt.Sprintf("%s %s.\n Try again!", rej.Guess, rej.Reason))
			continue
		case err != nil:
			return st, err
		}
		log.Debug().Str("gameId", s.ID).Str("guess", row.Word()).Str("state", st.String()).Msg("guess accepted")

		v = s.View()
		r.Board(v)
		switch st {
		case game.Won:
			r.Message(fmt.Sprintf("Solved in %d/%d tries :)", len(v.History), v.MaxAttempts))
		case game.Lost:
			r.Message(fmt.Sprintf("No more tries left, sorry :(\n The word was %s.", v.Solution))
		default:
			r.Message(defaultMessage)
			r.Alphabet(s.Language, s.Alphabet(), s.StatusOf)
			continue
		}
		if s.Number > 0 {
			r.printf(" (Random word number %d of %d)\n\n", s.Number, s.PoolSize)
		}
		return st, nil
	}
}

// readLines feeds input lines into a channel so the loop can also watch ctx.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			errs <- err
		}
	}()
	return lines, errs
}
