package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipesaver/internal/library"
)

func newFavoriteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a recipe's favorite mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				rec, err := resolveRecipe(repo, args[0])
				if err != nil {
					return err
				}
				toggled, found, err := repo.ToggleFavorite(cmd.Context(), rec.ID)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %s\n", rec.ID)
					return nil
				}
				if toggled.IsFavorite {
					fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as a favorite\n", toggled.Title)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from favorites\n", toggled.Title)
				}
				return nil
			})
		},
	}
}
