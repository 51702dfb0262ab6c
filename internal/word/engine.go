// internal/word/engine.go
//
// Per-letter scoring for the word-guessing game, using the classic two-pass
// algorithm so repeated letters in guess and answer resolve correctly.

package word

import "errors"

// Mark is the evaluation of one letter position.
type Mark string

const (
	MarkCorrect Mark = "correct" // right letter, right position
	MarkPresent Mark = "present" // letter occurs elsewhere in the answer
	MarkAbsent  Mark = "absent"  // letter does not occur (or is used up)
)

// Row is one scored guess: the word and its per-letter marks.
type Row struct {
	Word  string `json:"word"`
	Marks []Mark `json:"marks"`
}

// Won reports whether every position scored correct.
func (r Row) Won() bool {
	for _, m := range r.Marks {
		if m != MarkCorrect {
			return false
		}
	}
	return len(r.Marks) > 0
}

// Validation sentinels, mapped to inline messages by the HTTP layer.
var (
	ErrEmptyGuess = errors.New("word: empty guess")
	ErrNotAWord   = errors.New("word: malformed guess")
	ErrNotInList  = errors.New("word: not in word list")
	ErrGameOver   = errors.New("word: game is over")
)

// Score evaluates guess against answer. Both must be lowercase and the same
// length; Submit normalizes before calling.
//
// Pass 1 marks exact hits and counts the remaining answer letters; pass 2
// resolves present/absent for the rest, consuming counts so a letter is
// only marked present as many times as it remains unmatched in the answer.
func Score(guess, answer string) []Mark {
	n := len(guess)
	marks := make([]Mark, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			marks[i] = MarkCorrect
		} else {
			counts[answer[i]-'a']++
		}
	}
	for i := 0; i < n; i++ {
		if marks[i] == MarkCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if j >= 0 && j < 26 && counts[j] > 0 {
			marks[i] = MarkPresent
			counts[j]--
		} else {
			marks[i] = MarkAbsent
		}
	}
	return marks
}
