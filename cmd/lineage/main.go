// Package main provides the entry point for the lineage CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0-dev"
	globalTree     string
	globalLocale   string
	globalLogLevel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "lineage",
		Short:         "Family trees with kinship terms for every relative",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalTree, "tree", "t", "", "Tree to operate on")
	rootCmd.PersistentFlags().StringVar(&globalLocale, "locale", "", "Kinship vocabulary locale (ne, en)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newTreesCmd(),
		newMembersCmd(),
		newLinkCmd(),
		newRelationCmd(),
		newLabelsCmd(),
		newVocabCmd(),
		newImportCmd(),
		newExportCmd(),
		newWatchCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
