package words

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRareLetters(t *testing.T) {
	sorted := SortedFrequencies(map[rune]int{'E': 100, 'A': 80, 'B': 70, 'X': 10, 'Q': 5})
	require.Equal(t, 'E', sorted[0].Letter)
	require.Equal(t, 'Q', sorted[4].Letter)

	rare := RareLetters(sorted, RareCutoff)
	assert.Equal(t, map[rune]bool{'X': true, 'Q': true}, rare)

	flat := SortedFrequencies(map[rune]int{'A': 10, 'B': 9, 'C': 8})
	assert.Empty(t, RareLetters(flat, RareCutoff))
	assert.Empty(t, RareLetters(nil, RareCutoff))
}

func TestGenerate(t *testing.T) {
	src := strings.Join([]string{
		"ab", "abc", "bca", "cab", "acb", "bac", "cba", "aab", "bba", "abb", "caa",
		"ABC",       // duplicate after normalization
		"a b",       // separator word
		"it's",      // punctuation is dropped
		"abcd", "x", // other lengths still count towards letter frequency
	}, "\n")

	list, err := Generate(strings.NewReader(src), 3, false)
	require.NoError(t, err)
	assert.Len(t, list, 11)
	assert.Contains(t, list, "A_B")
	assert.NotContains(t, list, "IT'S")
}

func TestGenerateFiltersRareLetters(t *testing.T) {
	var base []string
	for i := 0; i < 30; i++ {
		base = append(base, "ABA", "BAB", "AAB", "BBA")
	}

	lines := append(append([]string{}, base...), "AAA", "BBB", "ABB", "BAA", "ABZ", "ZZZ")
	src := strings.Join(lines, "\n")

	list, err := Generate(strings.NewReader(src), 3, false)
	require.NoError(t, err)
	assert.Len(t, list, 10)
	assert.Contains(t, list, "ABZ")

	list, err = Generate(strings.NewReader(src), 3, true)
	require.NoError(t, err)
	assert.Len(t, list, 8)
	assert.NotContains(t, list, "ABZ")
	assert.NotContains(t, list, "ZZZ")

	lines = append(append([]string{}, base...), "ZZA", "ZZB", "ZAZ")
	_, err = Generate(strings.NewReader(strings.Join(lines, "\n")), 3, true)
	assert.ErrorIs(t, err, ErrNotEnoughWords, "only 4 words survive the filter")
}

func TestGenerateTooShort(t *testing.T) {
	_, err := Generate(strings.NewReader("crane\nslate\n"), 5, false)
	assert.ErrorIs(t, err, ErrNotEnoughWords)

	_, err = Generate(strings.NewReader("ab\ncd\n"), 5, false)
	assert.ErrorIs(t, err, ErrNotEnoughWords)
}
