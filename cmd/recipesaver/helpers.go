package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"recipesaver/internal/library"
	"recipesaver/internal/recipe"
)

const shortIDLength = 8

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// resolveRecipe looks up a recipe by full id or by an unambiguous id prefix.
func resolveRecipe(repo *library.Repository, arg string) (recipe.Recipe, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return recipe.Recipe{}, fmt.Errorf("recipe id is required")
	}

	if rec, ok := repo.Get(arg); ok {
		return rec, nil
	}

	var matches []recipe.Recipe
	for _, rec := range repo.Recipes() {
		if strings.HasPrefix(rec.ID, arg) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		return recipe.Recipe{}, fmt.Errorf("no recipe matches id %q", arg)
	case 1:
		return matches[0], nil
	default:
		return recipe.Recipe{}, fmt.Errorf("id %q is ambiguous (%d recipes match)", arg, len(matches))
	}
}

func formatRating(rating int) string {
	if rating <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", rating, recipe.MaxRating)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}

// isTerminal reports whether the writer is an interactive terminal. Buffers
// and pipes get the plain table style so output stays grep-friendly.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
