package testsupport

import (
	"context"
	"testing"

	"recipesaver/internal/config"
	"recipesaver/internal/library"
	"recipesaver/internal/logging"
	"recipesaver/internal/recipe"
	"recipesaver/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MustOpenRepository opens a repository over a fresh store and registers
// cleanup for both.
func MustOpenRepository(t testing.TB, cfg *config.Config, opts ...library.Option) *library.Repository {
	t.Helper()

	st := MustOpenStore(t, cfg)
	repo, err := library.Open(context.Background(), cfg, st, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// MustAdd adds a draft to the repository for tests.
func MustAdd(t testing.TB, repo *library.Repository, draft recipe.Draft) recipe.Recipe {
	t.Helper()

	rec, err := repo.Add(context.Background(), draft)
	if err != nil {
		t.Fatalf("repo.Add: %v", err)
	}
	return rec
}
