package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipesaver/internal/library"
	"recipesaver/internal/recipe"
)

// draftFlags holds the per-field flags shared by add and edit.
type draftFlags struct {
	url         string
	imageURL    string
	description string
	memo        string
	ingredients []string
	steps       []string
	tags        []string
	rating      int
}

func registerDraftFlags(cmd *cobra.Command, f *draftFlags) {
	cmd.Flags().StringVar(&f.url, "url", "", "Source URL for the recipe")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "Image URL for the recipe")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Short description")
	cmd.Flags().StringVarP(&f.memo, "memo", "m", "", "Personal memo")
	cmd.Flags().StringArrayVarP(&f.ingredients, "ingredient", "i", nil, "Ingredient line (repeatable)")
	cmd.Flags().StringArrayVarP(&f.steps, "step", "s", nil, "Preparation step (repeatable)")
	cmd.Flags().StringArrayVarP(&f.tags, "tag", "t", nil, "Tag (repeatable)")
	cmd.Flags().IntVarP(&f.rating, "rating", "r", 0, "Rating from 0 to 5")
}

// apply overrides draft fields with any flag the user set explicitly.
func (f *draftFlags) apply(cmd *cobra.Command, draft *recipe.Draft) {
	flags := cmd.Flags()
	if flags.Changed("url") {
		draft.URL = f.url
	}
	if flags.Changed("image-url") {
		draft.ImageURL = f.imageURL
	}
	if flags.Changed("description") {
		draft.Description = f.description
	}
	if flags.Changed("memo") {
		draft.Memo = f.memo
	}
	if flags.Changed("ingredient") {
		draft.Ingredients = f.ingredients
	}
	if flags.Changed("step") {
		draft.Steps = f.steps
	}
	if flags.Changed("tag") {
		draft.Tags = f.tags
	}
	if flags.Changed("rating") {
		draft.Rating = f.rating
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var flags draftFlags
	var fromURL string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a recipe to the collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft recipe.Draft

			if strings.TrimSpace(fromURL) != "" {
				svc, err := ctx.newEnrichService()
				if err != nil {
					return err
				}
				fetched, err := svc.Fetch(cmd.Context(), fromURL)
				if err != nil {
					return fmt.Errorf("fetch %s: %w", fromURL, err)
				}
				draft = fetched
			}

			flags.apply(cmd, &draft)
			if len(args) == 1 {
				draft.Title = args[0]
			}
			if strings.TrimSpace(draft.Title) == "" {
				return errors.New("a title is required (pass one as an argument or use --from-url)")
			}

			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				rec, err := repo.Add(cmd.Context(), draft)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %s (%s)\n", shortID(rec.ID), rec.Title)
				return nil
			})
		},
	}

	registerDraftFlags(cmd, &flags)
	cmd.Flags().StringVar(&fromURL, "from-url", "", "Pre-fill the recipe from a web page")
	return cmd
}
