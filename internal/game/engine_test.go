package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidConfig(t *testing.T) {
	_, err := New("", 6)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New("   ", 6)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New("CRANE", 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New("CRANE", -3)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewNormalizesSolution(t *testing.T) {
	g, err := New(" crane ", 6)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", g.Solution())
	assert.Equal(t, 5, g.WordLength())
	assert.Equal(t, 6, g.RemainingAttempts())
	assert.Equal(t, InProgress, g.Status())
	assert.NotEmpty(t, g.ID)
}

func TestCraneScenario(t *testing.T) {
	g, err := New("CRANE", 6)
	require.NoError(t, err)

	_, st, err := g.SubmitGuess("SPEEDS")
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, InProgress, st)
	assert.Empty(t, g.History())
	assert.Equal(t, 6, g.RemainingAttempts())

	row, st, err := g.SubmitGuess("crate")
	require.NoError(t, err)
	assert.Equal(t, InProgress, st)
	assert.Equal(t, []LetterStatus{Correct, Correct, Correct, Absent, Correct}, statuses(row))

	row, st, err = g.SubmitGuess("CRANE")
	require.NoError(t, err)
	assert.Equal(t, Won, st)
	assert.True(t, row.Solved())
	assert.Equal(t, 2, g.AttemptsUsed())
	assert.Equal(t, 4, g.RemainingAttempts())
}

func TestLostAfterMaxAttempts(t *testing.T) {
	g, err := New("CRANE", 3)
	require.NoError(t, err)

	for i, guess := range []string{"SPEED", "BUMPY", "TOILS"} {
		_, st, err := g.SubmitGuess(guess)
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, InProgress, st)
		} else {
			assert.Equal(t, Lost, st)
		}
	}
	assert.Equal(t, 0, g.RemainingAttempts())
}

func TestWinOnLastAttempt(t *testing.T) {
	g, err := New("CRANE", 2)
	require.NoError(t, err)
	_, _, err = g.SubmitGuess("SPEED")
	require.NoError(t, err)
	_, st, err := g.SubmitGuess("CRANE")
	require.NoError(t, err)
	assert.Equal(t, Won, st)
}

func TestSubmitAfterGameOver(t *testing.T) {
	for _, tc := range []struct {
		name    string
		guesses []string
		want    Status
	}{
		{"won", []string{"CRANE"}, Won},
		{"lost", []string{"SPEED"}, Lost},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New("CRANE", 1)
			require.NoError(t, err)
			for _, guess := range tc.guesses {
				_, _, err := g.SubmitGuess(guess)
				require.NoError(t, err)
			}
			before := g.History()

			row, st, err := g.SubmitGuess("CRANE")
			require.ErrorIs(t, err, ErrGameAlreadyOver)
			assert.Nil(t, row)
			assert.Equal(t, tc.want, st)
			assert.Equal(t, before, g.History())
		})
	}
}

func TestHistoryIsACopy(t *testing.T) {
	g, err := New("CRANE", 6)
	require.NoError(t, err)
	_, _, err = g.SubmitGuess("CRATE")
	require.NoError(t, err)

	h := g.History()
	h[0].Guess = "XXXXX"
	assert.Equal(t, "CRATE", g.History()[0].Guess)
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "playing", InProgress.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.False(t, InProgress.Over())
	assert.True(t, Won.Over())
	assert.True(t, Lost.Over())
}
