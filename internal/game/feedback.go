package game

import "fmt"

// Compute scores guess against solution using the two-pass Wordle algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct and consume that letter from the
//     available-count table (initialised to the letter counts of solution).
//
// Pass 2:
//   - For each non-Correct position: if the letter still has an available
//     count, mark Present and consume it; otherwise mark Absent.
//
// A letter guessed k times against m occurrences in the solution therefore
// gets at most min(k, m) non-Absent marks, exact matches first.
func Compute(guess, solution string) (FeedbackRow, error) {
	g, s := []rune(guess), []rune(solution)
	if len(g) != len(s) {
		return nil, fmt.Errorf("%w: guess has %d letters, solution has %d", ErrLengthMismatch, len(g), len(s))
	}

	available := make(map[rune]int, len(s))
	for _, r := range s {
		available[r]++
	}

	row := make(FeedbackRow, len(g))
	for i, r := range g {
		row[i].Letter = r
		if r == s[i] {
			row[i].Status = Correct
			available[r]--
		}
	}

	for i, r := range g {
		if row[i].Status == Correct {
			continue
		}
		if available[r] > 0 {
			row[i].Status = Present
			available[r]--
		} else {
			row[i].Status = Absent
		}
	}
	return row, nil
}
