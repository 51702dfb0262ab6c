package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gamedle/server/assets"
	"github.com/gamedle/server/internal/entity"
	"github.com/gamedle/server/internal/game"
	"github.com/gamedle/server/internal/httpserver"
	"github.com/gamedle/server/internal/store"
	"github.com/gamedle/server/internal/word"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	maxAttempts := 0
	if v := os.Getenv("MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxAttempts = n
		} else {
			log.Warn().Str("value", v).Msg("ignoring invalid MAX_ATTEMPTS")
		}
	}

	games := make([]httpserver.Game, 0, 2)
	for _, cfg := range game.BuiltIn() {
		if maxAttempts > 0 {
			cfg.MaxAttempts = maxAttempts
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			log.Fatal().Err(err).Str("game", cfg.ID).Msg("failed to load dataset")
		}
		log.Info().Str("game", cfg.ID).Int("entities", catalog.Len()).Msg("dataset loaded")
		games = append(games, httpserver.Game{Config: cfg, Catalog: catalog})
	}

	wordle, err := loadWordGame(maxAttempts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	log.Info().Int("answers", wordle.List.Len()).Msg("word lists loaded")

	kv := openStore()
	srv := httpserver.New(kv, games, wordle, getEnv("DAILY_SALT", "gamedle-daily-v1"))
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting gamedle server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadCatalog prefers DATASET_DIR when set, falling back to the embedded
// sample datasets so the server runs out of the box.
func loadCatalog(cfg game.Config) (*entity.Catalog, error) {
	if dir := os.Getenv("DATASET_DIR"); dir != "" {
		c, err := entity.LoadFile(filepath.Join(dir, cfg.DatasetFile), cfg.Schema)
		if err == nil {
			return c, nil
		}
		log.Warn().Err(err).Str("game", cfg.ID).Msg("dataset dir unusable, using embedded data")
	}
	data, err := assets.Dataset(cfg.DatasetFile)
	if err != nil {
		return nil, err
	}
	return entity.Load(data, cfg.Schema)
}

// loadWordGame builds the word variant from WORDS_ANSWERS_FILE /
// WORDS_ALLOWED_FILE when set, falling back to the embedded lists.
func loadWordGame(maxAttempts int) (*httpserver.WordGame, error) {
	cfg := word.Classic()
	if maxAttempts > 0 {
		cfg.MaxAttempts = maxAttempts
	}

	answers, err := readWords("WORDS_ANSWERS_FILE", "answers.txt", cfg.WordLength)
	if err != nil {
		return nil, err
	}
	allowed, err := readWords("WORDS_ALLOWED_FILE", "allowed.txt", cfg.WordLength)
	if err != nil {
		return nil, err
	}
	list, err := word.NewList(answers, allowed, cfg.WordLength)
	if err != nil {
		return nil, err
	}
	return &httpserver.WordGame{Config: cfg, List: list}, nil
}

// readWords loads one word list from the env-named file or the embedded
// fallback.
func readWords(envKey, embedded string, length int) ([]string, error) {
	if path := os.Getenv(envKey); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return word.Parse(data, length), nil
	}
	data, err := assets.Dataset(embedded)
	if err != nil {
		return nil, err
	}
	return word.Parse(data, length), nil
}

// openStore picks the persistence medium: SQLite when SQLITE_PATH is set,
// otherwise in-memory (progress and stats then live only for the process).
func openStore() store.KV {
	dsn := os.Getenv("SQLITE_PATH")
	if dsn == "" {
		log.Info().Msg("SQLITE_PATH not set, using in-memory store")
		return store.NewMemory()
	}
	db, err := openDB(dsn)
	if err != nil {
		log.Fatal().Err(err).Str("path", dsn).Msg("failed to open sqlite")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("path", dsn).Msg("sqlite store ready")
	return store.NewSQLite(db)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
