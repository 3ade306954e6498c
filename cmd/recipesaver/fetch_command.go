package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url>",
		Short: "Preview the recipe extracted from a web page",
		Long: "Fetch a web page and print the recipe draft extracted from it as JSON\n" +
			"without saving anything. Useful for checking what `add --from-url`\n" +
			"would produce.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.newEnrichService()
			if err != nil {
				return err
			}
			draft, err := svc.Fetch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}
			return writeJSON(cmd, draft)
		},
	}
}
