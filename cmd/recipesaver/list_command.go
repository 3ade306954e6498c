package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"recipesaver/internal/library"
	"recipesaver/internal/recipe"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var tagFilter string
	var search string
	var favoritesOnly bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved recipes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				recipes := filterRecipes(repo.Recipes(), tagFilter, search, favoritesOnly)

				if jsonOut {
					return writeJSON(cmd, recipes)
				}

				if len(recipes) == 0 {
					if tagFilter != "" || search != "" || favoritesOnly {
						fmt.Fprintln(cmd.OutOrStdout(), "No recipes match")
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), "No recipes saved")
					}
					return nil
				}

				rows := make([][]string, 0, len(recipes))
				for _, rec := range recipes {
					rows = append(rows, []string{
						shortID(rec.ID),
						truncate(rec.Title, 48),
						formatTags(rec.Tags),
						formatRating(rec.Rating),
						yesNo(rec.IsFavorite),
						strconv.Itoa(rec.ViewCount),
					})
				}
				out := renderTable(
					[]string{"ID", "Title", "Tags", "Rating", "Favorite", "Views"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
					isTerminal(cmd.OutOrStdout()),
				)
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tagFilter, "tag", "t", "", "Only recipes carrying this tag")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive title or ingredient match")
	cmd.Flags().BoolVarP(&favoritesOnly, "favorites", "f", false, "Only favorite recipes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the matching recipes as JSON")
	return cmd
}

func filterRecipes(recipes []recipe.Recipe, tag, search string, favoritesOnly bool) []recipe.Recipe {
	tag = strings.TrimSpace(tag)
	search = strings.TrimSpace(search)

	filtered := make([]recipe.Recipe, 0, len(recipes))
	for _, rec := range recipes {
		if favoritesOnly && !rec.IsFavorite {
			continue
		}
		if tag != "" && !rec.HasTag(tag) {
			continue
		}
		if search != "" && !rec.MatchesQuery(search) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}
