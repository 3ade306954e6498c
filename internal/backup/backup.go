// Package backup encodes and decodes the portable backup format used to move
// a recipe collection between storage instances.
//
// The current format is a versioned envelope; decoding also accepts the older
// bare-array format and normalizes records that predate the favorite flag and
// view counter.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipesaver/internal/recipe"
)

// Version is the envelope format version written by Encode.
const Version = "1.0"

// ErrMalformedBackup marks input that cannot be decoded as a backup. Callers
// match it with errors.Is and present the wrapped reason to the user.
var ErrMalformedBackup = errors.New("malformed backup")

// Envelope wraps an exported collection with metadata.
type Envelope struct {
	Recipes    []recipe.Recipe `json:"recipes"`
	ExportedAt time.Time       `json:"exportedAt"`
	Version    string          `json:"version"`
}

// Encode serializes the collection into a pretty-printed envelope. It never
// mutates the input.
func Encode(recipes []recipe.Recipe, now time.Time) ([]byte, error) {
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	env := Envelope{
		Recipes:    recipes,
		ExportedAt: now.UTC(),
		Version:    Version,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses backup text in either the envelope format or the legacy bare
// array format and normalizes every record. Parse failures and non-sequence
// shapes return an ErrMalformedBackup-wrapped error.
func Decode(raw []byte) ([]recipe.Recipe, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedBackup)
	}

	var recipes []recipe.Recipe
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal([]byte(trimmed), &recipes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
		}
	case '{':
		var env Envelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
		}
		if env.Recipes == nil {
			return nil, fmt.Errorf("%w: backup does not contain a recipe list", ErrMalformedBackup)
		}
		recipes = env.Recipes
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", ErrMalformedBackup)
	}

	for i := range recipes {
		recipes[i].Normalize()
	}
	return recipes, nil
}

// Filename returns the dated default backup file name.
func Filename(now time.Time) string {
	return "recipe-saver-backup-" + now.Format("2006-01-02") + ".json"
}
