package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeNeverDowngrades(t *testing.T) {
	k := NewKnowledge()
	assert.Equal(t, Unknown, k.StatusOf('E'))

	row, err := Compute("EERIE", "CRANE")
	require.NoError(t, err)
	k.Merge(row)
	assert.Equal(t, Correct, k.StatusOf('E'), "exact E must win over the absent copies")
	assert.Equal(t, Present, k.StatusOf('R'))
	assert.Equal(t, Absent, k.StatusOf('I'))

	row, err = Compute("SPEED", "CRANE")
	require.NoError(t, err)
	k.Merge(row)
	assert.Equal(t, Correct, k.StatusOf('E'))
	assert.Equal(t, Absent, k.StatusOf('S'))

	row, err = Compute("CRANE", "CRANE")
	require.NoError(t, err)
	k.Merge(row)
	assert.Equal(t, Correct, k.StatusOf('R'))
	assert.Equal(t, Unknown, k.StatusOf('Z'))
}

func TestKnowledgeMonotonicAndRecomputable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"CRANE", "SPEED", "ERASE", "ABIDE", "EERIE", "TOILS", "BUMPY", "CRATE"}
	letters := LettersInAlphabet(pool).Letters()

	for game := 0; game < 50; game++ {
		solution := pool[rng.Intn(len(pool))]
		k := NewKnowledge()
		var history []Turn
		for n := 0; n < 6; n++ {
			guess := pool[rng.Intn(len(pool))]
			row, err := Compute(guess, solution)
			require.NoError(t, err)

			before := make(map[rune]LetterStatus, len(letters))
			for _, r := range letters {
				before[r] = k.StatusOf(r)
			}
			k.Merge(row)
			history = append(history, Turn{Guess: guess, Feedback: row})

			for _, r := range letters {
				assert.GreaterOrEqual(t, k.StatusOf(r), before[r])
			}
		}
		assert.Equal(t, k.Snapshot(), KnowledgeFromHistory(history).Snapshot())
	}
}

func TestLettersInAlphabet(t *testing.T) {
	a := LettersInAlphabet([]string{"HALLO", "ÄPFEL", "EIN_A"})
	assert.Equal(t, []rune("AEFHILNOP_Ä"), a.Letters())
	assert.True(t, a.Contains('Ä'))
	assert.True(t, a.Contains('_'))
	assert.False(t, a.Contains('Z'))
	assert.Equal(t, 11, a.Len())

	empty := LettersInAlphabet(nil)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Contains('A'))
}

func TestLetterStatusText(t *testing.T) {
	b, err := Correct.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "correct", string(b))
	_, err = LetterStatus(9).MarshalText()
	assert.Error(t, err)
	assert.True(t, Correct > Present && Present > Absent && Absent > Unknown)
}
