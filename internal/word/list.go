// internal/word/list.go
//
// Word lists for the word-guessing game.
//   - "answers": canonical solutions the daily pick draws from.
//   - "allowed": valid guesses; always a superset of the answers.
//
// Lists are normalized to lowercase and filtered to the configured length
// at parse time, so lookups never need to re-validate.

package word

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

var ErrEmptyList = errors.New("word: answers list is empty")

// List is the immutable word set for one game.
type List struct {
	answers []string
	allowed map[string]struct{}
	length  int
}

// Parse extracts one word per line, lowercased and trimmed, keeping only
// alphabetic words of exactly length letters.
func Parse(data []byte, length int) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// NewList builds a List from answer and extra-allowed words. Answers are
// always allowed guesses; allowed may be nil.
func NewList(answers, allowed []string, length int) (*List, error) {
	l := &List{length: length, allowed: make(map[string]struct{}, len(answers)+len(allowed))}
	for _, w := range answers {
		if len(w) != length || !isAlpha(w) {
			continue
		}
		l.answers = append(l.answers, w)
		l.allowed[w] = struct{}{}
	}
	for _, w := range allowed {
		if len(w) == length && isAlpha(w) {
			l.allowed[w] = struct{}{}
		}
	}
	if len(l.answers) == 0 {
		return nil, ErrEmptyList
	}
	return l, nil
}

// Len reports the number of answer words.
func (l *List) Len() int { return len(l.answers) }

// Answer returns the answer at index i.
func (l *List) Answer(i int) string { return l.answers[i] }

// IsAllowed reports whether w is a valid guess.
func (l *List) IsAllowed(w string) bool {
	_, ok := l.allowed[strings.ToLower(w)]
	return ok
}

// Random returns a uniformly chosen answer using crypto/rand.
func (l *List) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
