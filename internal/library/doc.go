// Package library owns the in-memory recipe collection and every mutation of
// it.
//
// The Repository is the sole mutator: it loads the collection from the store
// once at open, keeps it newest-first in memory, and writes the full
// collection back through the store before installing any change, so memory
// and storage never observably diverge. Operations on a missing id are silent
// no-ops that report whether a record was found.
//
// An advisory file lock on the data directory serializes concurrent CLI
// invocations; the process holding an open Repository is the only writer.
package library
