// internal/game/engine.go
//
// Core guess evaluation for character games.
// Responsibilities:
//   - Compare a resolved guess against the target, field by field.
//   - Decide the outcome of one submission: won, continue, or exhausted.
//
// CompareGuess denormalizes the guessed entity into rendered display values
// at comparison time, so a stored history row stays meaningful on its own.

package game

import (
	"github.com/gamedle/server/internal/compare"
	"github.com/gamedle/server/internal/entity"
)

// FieldResult is one evaluated attribute of a guess.
type FieldResult struct {
	Value  string         `json:"value"` // rendered display text
	Status compare.Status `json:"status"`
	Arrow  compare.Arrow  `json:"arrow,omitempty"` // numeric fields only
}

// GuessResult is the full evaluation of one guess. Rows are keyed by the
// schema field key; the name row doubles as the win condition.
type GuessResult struct {
	Name   FieldResult            `json:"name"`
	Image  string                 `json:"image,omitempty"`
	Fields map[string]FieldResult `json:"fields"`
}

// Won reports the unique win condition: a correct name row.
func (r GuessResult) Won() bool { return r.Name.Status == compare.StatusCorrect }

// CompareGuess evaluates guess against target under schema.
func CompareGuess(schema entity.Schema, guess, target *entity.Entity) GuessResult {
	res := GuessResult{
		Name: FieldResult{
			Value:  guess.Name,
			Status: compare.Text(guess.Name, target.Name, true),
		},
		Image:  guess.Image,
		Fields: make(map[string]FieldResult, len(schema)),
	}
	for _, f := range schema {
		gv := guess.Fields[f.Key]
		tv := target.Fields[f.Key]
		row := FieldResult{Value: entity.Display(f, gv)}
		switch f.Kind {
		case entity.KindTags:
			row.Status = compare.TagSet(gv.Tags, tv.Tags)
		case entity.KindNumber:
			r := compare.Numeric(gv.Num, tv.Num)
			row.Status, row.Arrow = r.Status, r.Arrow
		default:
			row.Status = compare.Text(gv.Text, tv.Text, f.AllowPartial)
		}
		res.Fields[f.Key] = row
	}
	return res
}

// Outcome is the decision for one submitted guess.
type Outcome struct {
	Won            bool
	ShouldContinue bool
}

// processOutcome applies the terminal rules: a correct name wins regardless
// of remaining attempts; otherwise the game ends when the attempt that was
// just consumed was the last one.
func processOutcome(res GuessResult, currentAttempt, maxAttempts int) Outcome {
	if res.Won() {
		return Outcome{Won: true}
	}
	if currentAttempt+1 >= maxAttempts {
		return Outcome{}
	}
	return Outcome{ShouldContinue: true}
}
