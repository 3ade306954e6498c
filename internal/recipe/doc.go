// Package recipe defines the persisted recipe record and the draft shape the
// rest of the system exchanges.
//
// A Recipe is the only entity the tool stores. The repository assigns identity
// and lifecycle fields (id, createdAt, isFavorite, viewCount); everything else
// is caller-supplied content carried in a Draft. Field names in JSON match the
// storage and backup formats exactly, so this package is the single place the
// wire shape is declared.
//
// Records loaded from storage or a backup file pass through Normalize so that
// older records missing the favorite flag or view counter, or records with nil
// slices, are always safe to use downstream.
package recipe
