package game

import (
	"sort"
)

// Knowledge is the best-known status of every letter seen so far.
// It only ever upgrades: a letter shown Correct is never shown Absent later.
type Knowledge struct {
	letters map[rune]LetterStatus
}

// NewKnowledge returns empty knowledge; every letter is Unknown.
func NewKnowledge() *Knowledge {
	return &Knowledge{letters: make(map[rune]LetterStatus)}
}

// KnowledgeFromHistory recomputes knowledge from a full guess history.
// The result equals merging each row in order.
func KnowledgeFromHistory(history []Turn) *Knowledge {
	k := NewKnowledge()
	for _, t := range history {
		k.Merge(t.Feedback)
	}
	return k
}

// Merge folds one feedback row into the knowledge.
func (k *Knowledge) Merge(row FeedbackRow) {
	if k.letters == nil {
		k.letters = make(map[rune]LetterStatus)
	}
	for _, m := range row {
		if m.Status > k.letters[m.Letter] {
			k.letters[m.Letter] = m.Status
		}
	}
}

// StatusOf returns the best evidence for letter, or Unknown.
func (k *Knowledge) StatusOf(letter rune) LetterStatus {
	return k.letters[letter]
}

// Snapshot copies the known (non-Unknown) letters, keyed by letter string.
func (k *Knowledge) Snapshot() map[string]LetterStatus {
	out := make(map[string]LetterStatus, len(k.letters))
	for r, s := range k.letters {
		out[string(r)] = s
	}
	return out
}

// Alphabet is the sorted set of letters allowed for a candidate pool.
type Alphabet struct {
	letters []rune
	set     map[rune]struct{}
}

// LettersInAlphabet collects every letter occurring in any word of pool.
// It is not limited to A–Z, so non-English pools and the separator work.
func LettersInAlphabet(pool []string) Alphabet {
	a := Alphabet{set: make(map[rune]struct{})}
	for _, w := range pool {
		for _, r := range w {
			if _, ok := a.set[r]; ok {
				continue
			}
			a.set[r] = struct{}{}
			a.letters = append(a.letters, r)
		}
	}
	sort.Slice(a.letters, func(i, j int) bool { return a.letters[i] < a.letters[j] })
	return a
}

// Contains reports whether r belongs to the alphabet.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.set[r]
	return ok
}

// Letters returns the letters in ascending order.
func (a Alphabet) Letters() []rune {
	return append([]rune(nil), a.letters...)
}

// Len is the number of distinct letters.
func (a Alphabet) Len() int { return len(a.letters) }
