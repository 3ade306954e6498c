package library_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"recipesaver/internal/library"
	"recipesaver/internal/logging"
	"recipesaver/internal/recipe"
	"recipesaver/internal/testsupport"
)

func TestAddAssignsIdentityAndDefaults(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	first := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Curry"})
	second := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Ramen"})

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected ids to be assigned")
	}
	if first.ID == second.ID {
		t.Fatalf("ids must be unique, both %q", first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be stamped")
	}
	if first.IsFavorite || first.ViewCount != 0 {
		t.Fatalf("expected defaults false/0, got %+v", first)
	}
	if first.Ingredients == nil || first.Steps == nil || first.Tags == nil {
		t.Fatal("expected non-nil slices on the stored record")
	}
}

func TestAddPrependsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	testsupport.MustAdd(t, repo, recipe.Draft{Title: "Oldest"})
	testsupport.MustAdd(t, repo, recipe.Draft{Title: "Middle"})
	testsupport.MustAdd(t, repo, recipe.Draft{Title: "Newest"})

	recipes := repo.Recipes()
	titles := []string{recipes[0].Title, recipes[1].Title, recipes[2].Title}
	want := []string{"Newest", "Middle", "Oldest"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("expected newest-first order %v, got %v", want, titles)
	}
}

func TestAddAcceptsEmptyDraft(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	rec := testsupport.MustAdd(t, repo, recipe.Draft{})
	if rec.ID == "" {
		t.Fatal("expected id even for an empty draft")
	}
	if rec.Title != "" {
		t.Fatalf("title should pass through unvalidated, got %q", rec.Title)
	}
}

func TestUpdateReplacesContentPreservesOthers(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	testsupport.MustAdd(t, repo, recipe.Draft{Title: "Bystander"})
	target := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Old Title", Rating: 2})
	before := repo.Recipes()

	updated := target.Clone()
	updated.Title = "New Title"
	updated.Rating = 5

	found, err := repo.Update(context.Background(), updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}

	after := repo.Recipes()
	if len(after) != len(before) {
		t.Fatalf("collection size changed: %d -> %d", len(before), len(after))
	}
	got, ok := repo.Get(target.ID)
	if !ok || got.Title != "New Title" || got.Rating != 5 {
		t.Fatalf("record not replaced: %+v", got)
	}
	if !got.CreatedAt.Equal(target.CreatedAt) {
		t.Fatal("createdAt must survive an update that preserves it")
	}
	for _, rec := range after {
		if rec.ID == target.ID {
			continue
		}
		for _, prev := range before {
			if prev.ID == rec.ID && !reflect.DeepEqual(prev, rec) {
				t.Fatalf("unrelated record changed: %+v != %+v", prev, rec)
			}
		}
	}
}

func TestUpdateMissingIDIsSilentNoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	testsupport.MustAdd(t, repo, recipe.Draft{Title: "Keep"})
	before := repo.Recipes()

	found, err := repo.Update(context.Background(), recipe.Recipe{ID: "ghost", Title: "Nope"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing id")
	}
	if !reflect.DeepEqual(before, repo.Recipes()) {
		t.Fatal("collection must not change on a missing id")
	}
}

func TestDeleteRemovesAndIsIdempotentOnAbsence(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	keep := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Keep"})
	doomed := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Doomed"})

	found, err := repo.Delete(context.Background(), doomed.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !found {
		t.Fatal("expected deletion to report found")
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", repo.Len())
	}

	before := repo.Recipes()
	found, err = repo.Delete(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	if found {
		t.Fatal("expected found=false for absent id")
	}
	if !reflect.DeepEqual(before, repo.Recipes()) {
		t.Fatal("absent delete must leave the collection unchanged")
	}
	if _, ok := repo.Get(keep.ID); !ok {
		t.Fatal("surviving record disappeared")
	}
}

func TestToggleFavoriteFlips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	rec := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Pancakes"})

	ctx := context.Background()
	toggled, found, err := repo.ToggleFavorite(ctx, rec.ID)
	if err != nil || !found {
		t.Fatalf("ToggleFavorite: found=%v err=%v", found, err)
	}
	if !toggled.IsFavorite {
		t.Fatal("expected favorite after first toggle")
	}

	toggled, found, err = repo.ToggleFavorite(ctx, rec.ID)
	if err != nil || !found {
		t.Fatalf("ToggleFavorite: found=%v err=%v", found, err)
	}
	if toggled.IsFavorite {
		t.Fatal("expected unfavorite after second toggle")
	}

	if _, found, err := repo.ToggleFavorite(ctx, "ghost"); err != nil || found {
		t.Fatalf("absent toggle must be a no-op: found=%v err=%v", found, err)
	}
}

func TestIncrementViewCountMonotonic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	rec := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Stew", Memo: "winter"})
	other := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Salad"})

	ctx := context.Background()
	const n = 5
	for i := 0; i < n; i++ {
		if _, found, err := repo.IncrementViewCount(ctx, rec.ID); err != nil || !found {
			t.Fatalf("IncrementViewCount #%d: found=%v err=%v", i, found, err)
		}
	}

	got, _ := repo.Get(rec.ID)
	if got.ViewCount != n {
		t.Fatalf("expected viewCount %d, got %d", n, got.ViewCount)
	}
	if got.Title != rec.Title || got.Memo != rec.Memo {
		t.Fatalf("other fields must not change: %+v", got)
	}
	untouched, _ := repo.Get(other.ID)
	if untouched.ViewCount != 0 {
		t.Fatalf("other records must not change: %+v", untouched)
	}
}

func TestMutationsPersistAcrossReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	ctx := context.Background()
	st := testsupport.MustOpenStore(t, cfg)
	repo, err := library.Open(ctx, cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}

	rec, err := repo.Add(ctx, recipe.Draft{Title: "Persisted", Tags: []string{"test"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, _, err := repo.ToggleFavorite(ctx, rec.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := library.Open(ctx, cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get(rec.ID)
	if !ok {
		t.Fatal("record missing after reopen")
	}
	if !got.IsFavorite {
		t.Fatal("favorite flag lost across reopen")
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("createdAt changed across reopen: %v != %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestOpenRejectsSecondHolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	ctx := context.Background()
	st := testsupport.MustOpenStore(t, cfg)
	repo, err := library.Open(ctx, cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	defer repo.Close()

	if _, err := library.Open(ctx, cfg, st, logging.NewNop()); err == nil {
		t.Fatal("expected second open to fail while lock is held")
	}
}

func TestSnapshotIsIsolatedFromInternalState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.MustOpenRepository(t, cfg)

	rec := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Original", Ingredients: []string{"a"}})

	snap := repo.Recipes()
	snap[0].Title = "Mutated"
	snap[0].Ingredients[0] = "z"

	got, _ := repo.Get(rec.ID)
	if got.Title != "Original" || got.Ingredients[0] != "a" {
		t.Fatalf("snapshot mutation leaked into repository: %+v", got)
	}
}

func TestDeterministicClockAndIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	var seq int
	fixed := time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC)
	repo := testsupport.MustOpenRepository(t, cfg,
		library.WithClock(func() time.Time { return fixed }),
		library.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)

	rec := testsupport.MustAdd(t, repo, recipe.Draft{Title: "Fixed"})
	if rec.ID != "id-1" {
		t.Fatalf("expected id-1, got %q", rec.ID)
	}
	if !rec.CreatedAt.Equal(fixed) {
		t.Fatalf("expected fixed timestamp, got %v", rec.CreatedAt)
	}
}
