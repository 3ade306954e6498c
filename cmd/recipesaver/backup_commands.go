package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"recipesaver/internal/backup"
	"recipesaver/internal/library"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the collection to a backup file",
		Long: "Write the whole collection to a JSON backup file. With no argument the\n" +
			"file is named after today's date in the current directory. Pass - to\n" +
			"write the backup to stdout instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				now := time.Now().UTC()
				data, err := repo.Export(now)
				if err != nil {
					return err
				}

				target := ""
				if len(args) == 1 {
					target = args[0]
				}
				if target == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}

				if target == "" {
					target = backup.Filename(now)
				} else if info, err := os.Stat(target); err == nil && info.IsDir() {
					target = filepath.Join(target, backup.Filename(now))
				}

				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("write backup: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recipes to %s\n", repo.Len(), target)
				return nil
			})
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the collection with a backup file",
		Long: "Replace the whole collection with the contents of a JSON backup file.\n" +
			"Pass - to read the backup from stdin. A malformed backup leaves the\n" +
			"current collection untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			source := args[0]
			if source == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				source = "stdin"
			} else {
				raw, err = os.ReadFile(source)
				if err != nil {
					return fmt.Errorf("read backup: %w", err)
				}
			}

			return ctx.withRepository(cmd, func(repo *library.Repository) error {
				count, err := repo.Import(cmd.Context(), raw)
				if err != nil {
					if errors.Is(err, backup.ErrMalformedBackup) {
						return fmt.Errorf("%s is not a recipesaver backup: %w", source, err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes from %s\n", count, source)
				return nil
			})
		},
	}
}
