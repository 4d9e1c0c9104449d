package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
)

func newVocabCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List kinship labels and their terms",
		Long: `Lists every kinship label with its term in the selected vocabulary.
The vocabulary comes from --locale, then the config file, then defaults to Nepali.

Examples:
  lineage vocab
  lineage vocab --locale en`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocab(asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func runVocab(asJSON bool) error {
	e, err := loadEnv(true)
	if err != nil {
		return err
	}
	defer e.closer.Close()

	vocab, entries := handlers.ListVocabulary(e.cfg.Locale)

	if asJSON {
		return printJSON(entries)
	}

	fmt.Printf("Vocabulary: %s\n\n", vocab.Tag())
	fmt.Printf("  %-22s %s\n", "LABEL", "TERM")
	for _, entry := range entries {
		fmt.Printf("  %-22s %s\n", entry.Key, entry.Text)
	}

	return nil
}
