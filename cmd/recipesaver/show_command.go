package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"recipesaver/internal/library"
	"recipesaver/internal/recipe"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var noTouch bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				rec, err := resolveRecipe(repo, args[0])
				if err != nil {
					return err
				}

				if !noTouch {
					touched, found, err := repo.IncrementViewCount(cmd.Context(), rec.ID)
					if err != nil {
						return err
					}
					if found {
						rec = touched
					}
				}

				if jsonOut {
					return writeJSON(cmd, rec)
				}
				printRecipe(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noTouch, "no-touch", false, "Do not count this as a view")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the recipe as JSON")
	return cmd
}

func printRecipe(out io.Writer, rec recipe.Recipe) {
	fmt.Fprintln(out, rec.Title)
	fmt.Fprintln(out, strings.Repeat("=", len(rec.Title)))
	fmt.Fprintf(out, "ID:       %s\n", rec.ID)
	fmt.Fprintf(out, "Created:  %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Rating:   %s\n", formatRating(rec.Rating))
	fmt.Fprintf(out, "Favorite: %s\n", yesNo(rec.IsFavorite))
	fmt.Fprintf(out, "Views:    %d\n", rec.ViewCount)
	if rec.URL != "" {
		fmt.Fprintf(out, "Source:   %s\n", rec.URL)
	}
	if len(rec.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", formatTags(rec.Tags))
	}
	if rec.Description != "" {
		fmt.Fprintf(out, "\n%s\n", rec.Description)
	}
	if len(rec.Ingredients) > 0 {
		fmt.Fprintln(out, "\nIngredients:")
		for _, ing := range rec.Ingredients {
			fmt.Fprintf(out, "  - %s\n", ing)
		}
	}
	if len(rec.Steps) > 0 {
		fmt.Fprintln(out, "\nSteps:")
		for i, step := range rec.Steps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
	}
	if rec.Memo != "" {
		fmt.Fprintf(out, "\nMemo: %s\n", rec.Memo)
	}
}
