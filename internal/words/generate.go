package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/robalobadob/wordle/apps/go-cli/internal/game"
)

// RareCutoff is the frequency drop that separates common from rare letters.
const RareCutoff = 6

// ErrNotEnoughWords is returned when a generated list is too short to play.
var ErrNotEnoughWords = errors.New("not enough words")

// LetterFreq is a letter and how often it occurs in the source list.
type LetterFreq struct {
	Letter rune
	Count  int
}

// Generate builds a candidate pool of length-n words from a source list
// with one word (or phrase) per line.
//
// Lines are normalized with game.Normalize. Letter frequencies are counted
// over the whole source. With filterRare, words containing a rare letter
// (see RareLetters) are dropped. The list must end up with more than 2n words.
func Generate(src io.Reader, n int, filterRare bool) ([]string, error) {
	freq := map[rune]int{}
	seen := map[string]struct{}{}
	var list []string

	sc := bufio.NewScanner(src)
	for sc.Scan() {
		w := game.Normalize(sc.Text())
		if !validWord(w) {
			continue
		}
		for _, r := range w {
			freq[r]++
		}
		if runeLen(w) != n {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		list = append(list, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no words with %d letters", ErrNotEnoughWords, n)
	}

	if filterRare {
		rare := RareLetters(SortedFrequencies(freq), RareCutoff)
		list = withoutLetters(list, rare)
	}
	if len(list) <= 2*n {
		return nil, fmt.Errorf("%w: found only %d words with %d letters", ErrNotEnoughWords, len(list), n)
	}
	return list, nil
}

// SortedFrequencies orders letter counts by descending frequency
// (ties by letter, so results are deterministic).
func SortedFrequencies(freq map[rune]int) []LetterFreq {
	out := make([]LetterFreq, 0, len(freq))
	for r, c := range freq {
		out = append(out, LetterFreq{Letter: r, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Letter < out[j].Letter
	})
	return out
}

// RareLetters finds the first letter that is at least cutoff times rarer
// than its predecessor; it and every letter at or below its frequency are rare.
func RareLetters(sorted []LetterFreq, cutoff float64) map[rune]bool {
	rare := map[rune]bool{}
	if len(sorted) == 0 {
		return rare
	}
	maxFreq := 0
	prev := sorted[0].Count
	for _, lf := range sorted {
		if float64(prev)/float64(lf.Count) >= cutoff {
			maxFreq = lf.Count
			break
		}
		prev = lf.Count
	}
	for _, lf := range sorted {
		if lf.Count <= maxFreq {
			rare[lf.Letter] = true
		}
	}
	return rare
}

func withoutLetters(list []string, forbidden map[rune]bool) []string {
	if len(forbidden) == 0 {
		return list
	}
	out := make([]string, 0, len(list))
next:
	for _, w := range list {
		for _, r := range w {
			if forbidden[r] {
				continue next
			}
		}
		out = append(out, w)
	}
	return out
}
