package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedle/server/internal/compare"
	"github.com/gamedle/server/internal/entity"
)

const championFixture = `[
  {"id":"1","name":"Ahri","gender":"Female","position":["Mid"],"species":["Vastaya"],"resource":["Mana"],"rangeType":["Ranged"],"region":["Ionia"],"releaseYear":2011},
  {"id":"2","name":"Garen","gender":"Male","position":["Top"],"species":["Human"],"resource":["None"],"rangeType":["Melee"],"region":["Demacia"],"releaseYear":2010},
  {"id":"3","name":"Irelia","gender":"Female","position":["Top","Mid"],"species":["Human"],"resource":["Mana"],"rangeType":["Melee"],"region":["Ionia"],"releaseYear":2010}
]`

func loadChampions(t *testing.T) *entity.Catalog {
	t.Helper()
	c, err := entity.Load([]byte(championFixture), Loldle().Schema)
	require.NoError(t, err)
	return c
}

func TestCompareGuessDisjoint(t *testing.T) {
	c := loadChampions(t)
	res := CompareGuess(Loldle().Schema, c.FindExact("Garen"), c.FindExact("Ahri"))

	assert.False(t, res.Won())
	assert.Equal(t, compare.StatusWrong, res.Name.Status)
	assert.Equal(t, compare.StatusWrong, res.Fields["gender"].Status)
	assert.Equal(t, compare.StatusWrong, res.Fields["position"].Status)
	assert.Equal(t, compare.StatusWrong, res.Fields["region"].Status)

	// 2010 guessed against 2011: the answer is higher.
	year := res.Fields["releaseYear"]
	assert.Equal(t, compare.StatusWrong, year.Status)
	assert.Equal(t, compare.ArrowHigher, year.Arrow)
	assert.Equal(t, "2010", year.Value)
}

func TestCompareGuessPartialOverlap(t *testing.T) {
	c := loadChampions(t)
	res := CompareGuess(Loldle().Schema, c.FindExact("Irelia"), c.FindExact("Ahri"))

	// Top+Mid vs Mid: shared tag, unequal sets.
	assert.Equal(t, compare.StatusPartial, res.Fields["position"].Status)
	assert.Equal(t, compare.StatusCorrect, res.Fields["gender"].Status)
	assert.Equal(t, compare.StatusCorrect, res.Fields["region"].Status)
	assert.Equal(t, compare.StatusCorrect, res.Fields["resource"].Status)
}

func TestCompareGuessSelfIsAllCorrect(t *testing.T) {
	c := loadChampions(t)
	ahri := c.FindExact("Ahri")
	res := CompareGuess(Loldle().Schema, ahri, ahri)

	assert.True(t, res.Won())
	for key, row := range res.Fields {
		assert.Equal(t, compare.StatusCorrect, row.Status, key)
		assert.Equal(t, compare.ArrowNone, row.Arrow, key)
	}
}

func TestProcessOutcome(t *testing.T) {
	winning := GuessResult{Name: FieldResult{Status: compare.StatusCorrect}}
	losing := GuessResult{Name: FieldResult{Status: compare.StatusWrong}}

	// A win is terminal regardless of remaining attempts.
	assert.Equal(t, Outcome{Won: true}, processOutcome(winning, 0, 6))
	assert.Equal(t, Outcome{Won: true}, processOutcome(winning, 5, 6))

	// A miss consumes an attempt; the last one ends the game.
	assert.Equal(t, Outcome{ShouldContinue: true}, processOutcome(losing, 0, 6))
	assert.Equal(t, Outcome{ShouldContinue: true}, processOutcome(losing, 4, 6))
	assert.Equal(t, Outcome{}, processOutcome(losing, 5, 6))
}
