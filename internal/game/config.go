// internal/game/config.go
//
// Per-game configuration. Every game variant is the same generic engine
// parameterized by a Config: which dataset to load, how many attempts a
// day allows, and the typed field schema driving comparison and display.

package game

import "github.com/gamedle/server/internal/entity"

// Config declares one game variant.
type Config struct {
	ID          string // stable identifier, also the persistence key
	Name        string
	Description string
	EntityLabel string // what a guess is called in messages ("champion", "pirate")
	MaxAttempts int
	DatasetFile string // file name under the dataset dir, also the embedded fallback name
	Schema      entity.Schema
}

// Loldle is the League of Legends champion game.
func Loldle() Config {
	return Config{
		ID:          "loldle",
		Name:        "LoLdle",
		Description: "Guess the League of Legends champion",
		EntityLabel: "champion",
		MaxAttempts: 6,
		DatasetFile: "champions.json",
		Schema: entity.Schema{
			{Key: "gender", Label: "Gender", Kind: entity.KindText},
			{Key: "position", Label: "Position", Kind: entity.KindTags},
			{Key: "species", Label: "Species", Kind: entity.KindTags},
			{Key: "resource", Label: "Resource", Kind: entity.KindTags},
			{Key: "rangeType", Label: "Range type", Kind: entity.KindTags},
			{Key: "region", Label: "Region", Kind: entity.KindTags},
			{Key: "releaseYear", Label: "Release year", Kind: entity.KindNumber, Format: entity.FormatYear},
		},
	}
}

// OnePiece is the One Piece character game.
func OnePiece() Config {
	return Config{
		ID:          "onepiecedle",
		Name:        "One Piece DLE",
		Description: "Guess the One Piece character",
		EntityLabel: "character",
		MaxAttempts: 6,
		DatasetFile: "crew.json",
		Schema: entity.Schema{
			{Key: "gender", Label: "Gender", Kind: entity.KindText},
			{Key: "affiliation", Label: "Affiliation", Kind: entity.KindText, AllowPartial: true, Searchable: true},
			{Key: "devilFruit", Label: "Devil fruit", Kind: entity.KindText, AllowPartial: true},
			{Key: "haki", Label: "Haki", Kind: entity.KindTags},
			{Key: "lastBounty", Label: "Last bounty", Kind: entity.KindNumber, Format: entity.FormatBounty},
			{Key: "height", Label: "Height", Kind: entity.KindNumber, Format: entity.FormatHeight},
			{Key: "origin", Label: "Origin", Kind: entity.KindText, AllowPartial: true},
			{Key: "debutArc", Label: "Debut arc", Kind: entity.KindNumber},
		},
	}
}

// BuiltIn lists every game the server ships with.
func BuiltIn() []Config {
	return []Config{Loldle(), OnePiece()}
}
