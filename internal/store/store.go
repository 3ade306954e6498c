package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"recipesaver/internal/config"
	"recipesaver/internal/logging"
	"recipesaver/internal/recipe"
)

// Store manages recipe collection persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the recipe database and applies the schema.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "recipes.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   dbPath,
		logger: logging.NewComponentLogger(logger, "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the previously saved collection. A missing slot yields an
// empty collection. An unparseable payload is logged and likewise treated as
// "no data" so corruption never blocks startup.
func (s *Store) Load(ctx context.Context) ([]recipe.Recipe, error) {
	var payload string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT payload FROM storage_slots WHERE slot = ?`,
		recipesSlot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []recipe.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", recipesSlot, err)
	}

	if payload == "" {
		return []recipe.Recipe{}, nil
	}

	var recipes []recipe.Recipe
	if err := json.Unmarshal([]byte(payload), &recipes); err != nil {
		s.logger.Warn("stored collection is corrupt, starting empty",
			logging.String(logging.FieldPath, s.path),
			logging.Error(err))
		return []recipe.Recipe{}, nil
	}
	if recipes == nil {
		return []recipe.Recipe{}, nil
	}

	for i := range recipes {
		recipes[i].Normalize()
	}

	s.logger.Debug("loaded collection", logging.Int(logging.FieldCount, len(recipes)))
	return recipes, nil
}

// Save serializes the full collection and overwrites the stored blob. This is
// a whole-collection replace; write failures surface to the caller.
func (s *Store) Save(ctx context.Context, recipes []recipe.Recipe) error {
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}

	payload, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO storage_slots (slot, payload, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		recipesSlot,
		string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", recipesSlot, err)
	}

	s.logger.Debug("saved collection", logging.Int(logging.FieldCount, len(recipes)))
	return nil
}
