package store

// The container format never migrates; only per-record normalization happens,
// and that lives in the recipe package.
const schema = `
CREATE TABLE IF NOT EXISTS storage_slots (
    slot       TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// recipesSlot is the fixed slot the whole collection lives under.
const recipesSlot = "recipes"
