// Package terminal draws the game board and the alphabet hint panel and
// runs the interactive line-based game loop.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
	"github.com/robalobadob/wordle/apps/go-cli/internal/session"
)

// ANSI escape codes.
const (
	bgGreen  = "\033[42m"
	bgYellow = "\033[43m"
	bgBlack  = "\033[40m"
	bgGray   = "\033[100m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"

	reset = "\033[0m"
	bold  = "\033[1m"
)

// lettersPerLine is the width of the alphabet panel.
const lettersPerLine = 13

// Renderer writes the game screen to a terminal or plain writer.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer wraps f so ANSI codes also work on Windows consoles.
// Colour is used only when f is a terminal and noColor is false.
func NewRenderer(f *os.File, noColor bool) *Renderer {
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return &Renderer{w: colorable.NewColorable(f), color: tty && !noColor}
}

// NewPlainRenderer writes without escape codes.
func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{w: colorable.NewNonColorable(w)}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// tile formats one guessed letter with its feedback colour.
func (r *Renderer) tile(m game.Mark) string {
	if r.color {
		bg := bgGray
		switch m.Status {
		case game.Correct:
			bg = bgGreen
		case game.Present:
			bg = bgYellow
		}
		return fmt.Sprintf("%s%s %c %s", bold, bg, m.Letter, reset)
	}
	switch m.Status {
	case game.Correct:
		return fmt.Sprintf("[%c]", m.Letter)
	case game.Present:
		return fmt.Sprintf("(%c)", m.Letter)
	}
	return fmt.Sprintf(" %c ", m.Letter)
}

// Welcome prints the title and the rules line.
func (r *Renderer) Welcome(language string, length, attempts int) {
	r.printf("\n Welcome to COMMAND LINE WORDLE!\n\n")
	r.printf(" Guess the %s word\n with %d letters\n in %d or less tries!\n\n", language, length, attempts)
}

// Board prints every guess so far, then one blank row per remaining try.
func (r *Renderer) Board(v session.View) {
	for _, t := range v.History {
		var b strings.Builder
		for _, m := range t.Feedback {
			b.WriteString(r.tile(m))
		}
		r.printf(" %s\n", b.String())
	}
	for i := 0; i < v.Remaining; i++ {
		if r.color {
			r.printf(" %s%s%s\n", bgBlack, strings.Repeat(" ", 3*v.Length), reset)
		} else {
			r.printf(" %s\n", strings.Repeat(" _ ", v.Length))
		}
	}
}

// Message prints a status line below the board.
func (r *Renderer) Message(msg string) {
	r.printf("\n %s\n\n", msg)
}

// Alphabet prints the allowed letters coloured by what is known about them.
func (r *Renderer) Alphabet(language string, alphabet game.Alphabet, statusOf func(rune) game.LetterStatus) {
	r.printf(" The following letters are allowed for %s:\n\n", language)
	for i, l := range alphabet.Letters() {
		if i > 0 && i%lettersPerLine == 0 {
			r.printf("\n")
		}
		r.printf(" %s", r.hint(l, statusOf(l)))
	}
	r.printf("\n\n")
}

func (r *Renderer) hint(l rune, st game.LetterStatus) string {
	if r.color {
		c := ""
		switch st {
		case game.Correct:
			c = fgGreen
		case game.Present:
			c = fgYellow
		case game.Absent:
			c = fgGray
		}
		return fmt.Sprintf("%s%c%s ", c, l, reset)
	}
	switch st {
	case game.Correct:
		return fmt.Sprintf("[%c]", l)
	case game.Present:
		return fmt.Sprintf("(%c)", l)
	case game.Absent:
		return " - "
	}
	return fmt.Sprintf(" %c ", l)
}
