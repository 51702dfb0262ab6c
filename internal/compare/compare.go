// internal/compare/compare.go
//
// Field comparison primitives for character-guessing games.
// Every guessed attribute resolves to one of three statuses:
//   - "correct": the guessed value matches the target exactly.
//   - "partial": the values overlap without being equal.
//   - "wrong":   no meaningful overlap.
//
// Numeric fields additionally carry a direction hint ("higher"/"lower")
// telling the player which way the true answer lies.
//
// All functions are pure and total: nil or absent operands compare as
// "wrong", never as an error or panic.

package compare

import "strings"

// Status is the per-field evaluation result of a guess.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPartial Status = "partial"
	StatusWrong   Status = "wrong"
)

// Arrow is the direction hint attached to numeric comparisons.
// ArrowHigher means the true answer is higher than the guess.
type Arrow string

const (
	ArrowNone   Arrow = ""
	ArrowHigher Arrow = "higher"
	ArrowLower  Arrow = "lower"
)

// Result pairs a status with an optional direction hint.
type Result struct {
	Status Status `json:"status"`
	Arrow  Arrow  `json:"arrow,omitempty"`
}

// Text compares two text values case-insensitively.
//
// Rules:
//   - Equal (ignoring case) → correct.
//   - allowPartial and the guess contains the target (that direction only,
//     e.g. guessing "Monkey D. Luffy" against target "Luffy") → partial.
//   - Otherwise wrong. An empty guess or target is never correct.
//
// Categorical fields such as gender pass allowPartial=false so they only
// ever report correct/wrong.
func Text(guess, target string, allowPartial bool) Status {
	g := strings.ToLower(strings.TrimSpace(guess))
	t := strings.ToLower(strings.TrimSpace(target))
	if g == "" || t == "" {
		return StatusWrong
	}
	if g == t {
		return StatusCorrect
	}
	if allowPartial && strings.Contains(g, t) {
		return StatusPartial
	}
	return StatusWrong
}

// TagSet compares two tag lists as case-insensitive sets.
//
// Equal sets → correct. Any shared tag between unequal sets → partial.
// Disjoint sets, or a missing/empty operand on either side → wrong.
// Duplicate tags within one list are collapsed before comparison.
func TagSet(guess, target []string) Status {
	gs := toSet(guess)
	ts := toSet(target)
	if len(gs) == 0 || len(ts) == 0 {
		return StatusWrong
	}
	common := 0
	for tag := range gs {
		if _, ok := ts[tag]; ok {
			common++
		}
	}
	if common == len(gs) && len(gs) == len(ts) {
		return StatusCorrect
	}
	if common > 0 {
		return StatusPartial
	}
	return StatusWrong
}

// Numeric compares orderable values. There is no partial state:
// equal → (correct, none); guess below target → (wrong, higher);
// guess above target → (wrong, lower).
func Numeric(guess, target float64) Result {
	switch {
	case guess == target:
		return Result{Status: StatusCorrect, Arrow: ArrowNone}
	case guess < target:
		return Result{Status: StatusWrong, Arrow: ArrowHigher}
	default:
		return Result{Status: StatusWrong, Arrow: ArrowLower}
	}
}

// toSet lowercases and de-duplicates a tag list.
func toSet(tags []string) map[string]struct{} {
	m := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			m[t] = struct{}{}
		}
	}
	return m
}
