package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipesaver/internal/enrich"
	"recipesaver/internal/library"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var flags draftFlags
	var title string
	var fromURL string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of an existing recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				rec, err := resolveRecipe(repo, args[0])
				if err != nil {
					return err
				}

				if strings.TrimSpace(fromURL) != "" {
					svc, err := ctx.newEnrichService()
					if err != nil {
						return err
					}
					fetched, err := svc.Fetch(cmd.Context(), fromURL)
					if err != nil {
						return fmt.Errorf("fetch %s: %w", fromURL, err)
					}
					rec = enrich.Merge(rec, fetched)
				}

				if cmd.Flags().Changed("title") {
					if strings.TrimSpace(title) == "" {
						return fmt.Errorf("the title cannot be empty")
					}
					rec.Title = title
				}
				if cmd.Flags().Changed("url") {
					rec.URL = flags.url
				}
				if cmd.Flags().Changed("image-url") {
					rec.ImageURL = flags.imageURL
				}
				if cmd.Flags().Changed("description") {
					rec.Description = flags.description
				}
				if cmd.Flags().Changed("memo") {
					rec.Memo = flags.memo
				}
				if cmd.Flags().Changed("ingredient") {
					rec.Ingredients = flags.ingredients
				}
				if cmd.Flags().Changed("step") {
					rec.Steps = flags.steps
				}
				if cmd.Flags().Changed("tag") {
					rec.Tags = flags.tags
				}
				if cmd.Flags().Changed("rating") {
					rec.Rating = flags.rating
				}

				found, err := repo.Update(cmd.Context(), rec)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No recipe with id %s\n", rec.ID)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %s (%s)\n", shortID(rec.ID), rec.Title)
				return nil
			})
		},
	}

	registerDraftFlags(cmd, &flags)
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&fromURL, "from-url", "", "Fill empty fields from a web page")
	return cmd
}
