package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

func newLabelsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "labels <focus>",
		Short: "Label every member relative to one member",
		Long: `Prints every member of the tree with the kinship term it has from the
point of view of <focus>, in roster order.

Examples:
  lineage labels -t sharma Ram
  lineage labels -t sharma Ram --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabels(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func runLabels(cmd *cobra.Command, focusRef string, asJSON bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		labels, err := d.KinshipHandler.HandleLabels(ctx, focusRef)
		if err != nil {
			return fmt.Errorf("labelling members: %w", err)
		}

		if asJSON {
			return printJSON(labels)
		}

		printLabels(labels)
		return nil
	})
}

// printLabels writes one line per member with the focus marked.
func printLabels(labels []services.NodeLabel) {
	fmt.Printf("  %-38s %-24s %s\n", "ID", "NAME", "RELATION")
	for _, l := range labels {
		text := l.Text
		if l.Focused {
			text = "(focus)"
		}
		fmt.Printf("  %-38s %-24s %s\n", l.ID, l.Name, text)
	}
}
