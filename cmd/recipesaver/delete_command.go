package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipesaver/internal/library"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a recipe from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				rec, err := resolveRecipe(repo, args[0])
				if err != nil {
					return err
				}
				found, err := repo.Delete(cmd.Context(), rec.ID)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %s\n", rec.ID)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %s (%s)\n", shortID(rec.ID), rec.Title)
				return nil
			})
		},
	}
}
