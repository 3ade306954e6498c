package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipesaver/internal/recipe"
)

const samplePage = `<html><head>
<meta property="og:title" content="Grilled Halloumi">
<meta property="og:description" content="Salty cheese, hot grill.">
</head><body></body></html>`

func TestFetchCommandPrintsDraft(t *testing.T) {
	env := setupCLITestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	out, _, err := runCLI(t, []string{"fetch", srv.URL + "/halloumi"}, env.configPath)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	var draft recipe.Draft
	if err := json.Unmarshal([]byte(out), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if draft.Title != "Grilled Halloumi" {
		t.Fatalf("unexpected title: %q", draft.Title)
	}
	if draft.Description != "Salty cheese, hot grill." {
		t.Fatalf("unexpected description: %q", draft.Description)
	}

	// Preview only; nothing may be stored.
	if recipes := readRecipes(t, env.cfg); len(recipes) != 0 {
		t.Fatalf("fetch stored %d recipes", len(recipes))
	}
}

func TestAddFromURL(t *testing.T) {
	env := setupCLITestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	out, _, err := runCLI(t, []string{
		"add",
		"--from-url", srv.URL + "/halloumi",
		"--tag", "cheese",
	}, env.configPath)
	if err != nil {
		t.Fatalf("add --from-url: %v", err)
	}
	requireContains(t, out, "Grilled Halloumi")

	recipes := readRecipes(t, env.cfg)
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	rec := recipes[0]
	if rec.Title != "Grilled Halloumi" {
		t.Fatalf("fetched title lost: %q", rec.Title)
	}
	if rec.URL != srv.URL+"/halloumi" {
		t.Fatalf("source url lost: %q", rec.URL)
	}
	if len(rec.Tags) != 1 || rec.Tags[0] != "cheese" {
		t.Fatalf("explicit flag not applied: %#v", rec.Tags)
	}
}

func TestEditFromURLFillsOnlyEmptyFields(t *testing.T) {
	env := setupCLITestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	seeded := seedRecipes(t, env.cfg, recipe.Draft{Title: "My Halloumi"})

	if _, _, err := runCLI(t, []string{"edit", seeded[0].ID, "--from-url", srv.URL}, env.configPath); err != nil {
		t.Fatalf("edit --from-url: %v", err)
	}

	recipes := readRecipes(t, env.cfg)
	rec := recipes[0]
	if rec.Title != "My Halloumi" {
		t.Fatalf("filled title overridden: %q", rec.Title)
	}
	if rec.Description != "Salty cheese, hot grill." {
		t.Fatalf("empty description not filled: %q", rec.Description)
	}
}
