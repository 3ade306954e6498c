package library

import (
	"context"
	"time"

	"recipesaver/internal/backup"
	"recipesaver/internal/logging"
)

// Export serializes the current collection into the backup envelope. It is a
// pure read: neither memory nor storage changes.
func (r *Repository) Export(now time.Time) ([]byte, error) {
	r.mu.Lock()
	recipes := snapshot(r.recipes)
	r.mu.Unlock()

	return backup.Encode(recipes, now)
}

// Import decodes backup text, wholesale-replaces the collection with the
// normalized records, and writes through to the store. Malformed input
// returns backup.ErrMalformedBackup and leaves existing data untouched. On
// success it reports the number of imported records.
func (r *Repository) Import(ctx context.Context, raw []byte) (int, error) {
	recipes, err := backup.Decode(raw)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.persist(ctx, recipes); err != nil {
		return 0, err
	}

	r.logger.Info("imported collection", logging.Int(logging.FieldCount, len(recipes)))
	return len(recipes), nil
}
