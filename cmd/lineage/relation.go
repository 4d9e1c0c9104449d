package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

func newRelationCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "relation <from> <to>",
		Short: "Show what one member is to another",
		Long: `Shows the kinship term for <to> as seen from <from>. Members are given by
id or name.

Examples:
  lineage relation -t sharma Ram Sita
  lineage relation -t sharma Ram Hari --locale en`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelation(cmd, args[0], args[1], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func runRelation(cmd *cobra.Command, fromRef, toRef string, asJSON bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.KinshipHandler.HandleRelation(ctx, fromRef, toRef)
		if err != nil {
			return fmt.Errorf("resolving relation: %w", err)
		}

		if asJSON {
			return printJSON(result)
		}

		fmt.Printf("%s is %s's %s\n", memberName(result.ToMember, toRef), memberName(result.FromMember, fromRef), result.Text)
		fmt.Printf("  label: %s (%s)\n", result.Label, result.Tier)
		return nil
	})
}

// memberName prefers the member's name and falls back to the reference
// the user typed when it matched no one.
func memberName(m *entities.FamilyMember, ref string) string {
	if m == nil {
		return ref
	}
	return m.Name
}
