package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import members from JSON or CSV",
		Long: `Imports members from a structured file. JSON files may hold a bare member
array or an object with "familyName" and "members". Records are stored as
given; links between members are not repaired.

Conflict handling:
  skip       keep members that already exist
  overwrite  replace existing members with the imported record
  replace    discard the whole roster and store the file in its place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite, replace)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	strategy, err := services.ParseConflictStrategy(flags.onConflict)
	if err != nil {
		return fmt.Errorf("invalid --on-conflict value: %w", err)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: strategy,
		}

		fmt.Printf("Importing %s...\n", filePath)

		result, err := d.ImportHandler.Handle(ctx, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}
		d.Logger.Info("import finished",
			"file", filePath,
			"strategy", string(strategy),
			"imported", result.Imported,
			"skipped", result.Skipped,
			"errors", len(result.Errors),
		)

		// Display errors
		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		// Display summary
		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d members would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d members", result.Imported)
		}

		if result.Skipped > 0 {
			fmt.Printf(", %d skipped (already exist)", result.Skipped)
		}

		if len(result.Errors) > 0 {
			fmt.Printf(", %d errors", len(result.Errors))
		}

		fmt.Println()

		return nil
	})
}
