// internal/game/validate.go
//
// Input validation for one guess submission. Failures are sentinel errors
// the caller maps to inline user-visible messages; none of them affect game
// state.

package game

import (
	"errors"
	"strings"

	"github.com/gamedle/server/internal/entity"
)

var (
	// ErrEmptyGuess: the trimmed input was empty.
	ErrEmptyGuess = errors.New("game: empty guess")
	// ErrAlreadyGuessed: the name was already submitted this game.
	ErrAlreadyGuessed = errors.New("game: already guessed")
	// ErrNotFound: the input resolved to no known entity.
	ErrNotFound = errors.New("game: no matching entity")
	// ErrGameOver: the session has already reached a terminal state.
	ErrGameOver = errors.New("game: game is over")
)

// Resolve turns raw user input into a catalog entity.
//
// Resolution order: trimmed case-insensitive exact name first, then the
// first entry of the suggestion list for the input. Duplicates against the
// guessed history are rejected before resolution.
func Resolve(c *entity.Catalog, raw string, guessed []string) (*entity.Entity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyGuess
	}
	for _, name := range guessed {
		if strings.EqualFold(strings.TrimSpace(name), trimmed) {
			return nil, ErrAlreadyGuessed
		}
	}
	if e := c.FindExact(trimmed); e != nil {
		return e, nil
	}
	if matches := c.Filter(trimmed, guessed); len(matches) > 0 {
		return matches[0], nil
	}
	return nil, ErrNotFound
}
