package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
)

func newLinkCmd() *cobra.Command {
	var both bool

	cmd := &cobra.Command{
		Use:   "link <member> <parent|child|spouse> <target>",
		Short: "Link a member to a relative",
		Long: `Adds a parent, child or spouse link to a member. Members are given by
id or name. By default only the member's own record changes; use --both to
also add the matching link on the target.

Examples:
  lineage link -t sharma Ram parent Hari
  lineage link -t sharma Hari spouse Gita --both`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, args, both)
		},
	}

	cmd.Flags().BoolVarP(&both, "both", "b", false, "Also link the target back")

	cmd.AddCommand(newLinkDeleteCmd())

	return cmd
}

func runLink(cmd *cobra.Command, args []string, both bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.LinkHandler.HandleLink(ctx, args[0], args[1], args[2], both)
		if err != nil {
			return fmt.Errorf("linking members: %w", err)
		}

		printLink("Linked", result)
		return nil
	})
}

func newLinkDeleteCmd() *cobra.Command {
	var both bool

	cmd := &cobra.Command{
		Use:   "delete <member> <parent|child|spouse> <target>",
		Short: "Remove a link between two members",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinkDelete(cmd, args, both)
		},
	}

	cmd.Flags().BoolVarP(&both, "both", "b", false, "Also remove the target's link back")

	return cmd
}

func runLinkDelete(cmd *cobra.Command, args []string, both bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		result, err := d.LinkHandler.HandleUnlink(ctx, args[0], args[1], args[2], both)
		if err != nil {
			return fmt.Errorf("unlinking members: %w", err)
		}

		printLink("Unlinked", result)
		return nil
	})
}

func printLink(verb string, result *handlers.LinkResult) {
	fmt.Printf("%s: %s -[%s]-> %s\n", verb, result.Member.Name, result.Kind, result.Target.Name)
	if result.Bidirectional {
		fmt.Printf("  %s -[%s]-> %s\n", result.Target.Name, result.Kind.Inverse(), result.Member.Name)
	}
}
