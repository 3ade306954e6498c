// Package store persists the full recipe collection in SQLite.
//
// The collection is stored as one JSON blob in a single slot row, so every
// save is a whole-collection replace and there is no per-record migration.
// Load tolerates a corrupt payload: it logs a warning and reports an empty
// collection instead of failing, keeping the tool usable after corruption.
package store
