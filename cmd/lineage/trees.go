package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
)

func newTreesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "Manage family trees",
		RunE:  runTreesList,
	}

	cmd.AddCommand(
		newTreesListCmd(),
		newTreesCreateCmd(),
		newTreesDeleteCmd(),
	)

	return cmd
}

func newTreesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all trees",
		RunE:  runTreesList,
	}
}

func runTreesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withTreeHandler(func(handler *handlers.TreeHandler) error {
		trees, err := handler.HandleList(ctx)
		if err != nil {
			return fmt.Errorf("listing trees: %w", err)
		}

		if len(trees) == 0 {
			fmt.Println("No trees configured.")
			fmt.Println("Use 'lineage trees create NAME' to create a tree.")
			return nil
		}

		fmt.Printf("%-20s %-20s %-8s %s\n", "NAME", "FAMILY", "MEMBERS", "DESCRIPTION")
		fmt.Printf("%-20s %-20s %-8s %s\n", "----", "------", "-------", "-----------")

		for _, tree := range trees {
			fmt.Printf("%-20s %-20s %-8d %s\n", tree.Name, tree.FamilyName, tree.Members, tree.Description)
		}

		return nil
	})
}

func newTreesCreateCmd() *cobra.Command {
	var familyName, description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreesCreate(cmd, args[0], familyName, description)
		},
	}

	cmd.Flags().StringVarP(&familyName, "family", "F", "", "Family name shown with the tree")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Tree description")

	return cmd
}

func runTreesCreate(cmd *cobra.Command, name, familyName, description string) error {
	ctx := cmd.Context()

	return withTreeHandler(func(handler *handlers.TreeHandler) error {
		result, err := handler.HandleCreate(ctx, name, familyName, description)
		if err != nil {
			return fmt.Errorf("creating tree: %w", err)
		}

		if result.Initialized {
			fmt.Printf("Initialized lineage in %s\n", result.ConfigPath)
		}
		fmt.Printf("Created tree %q at %s\n", name, result.DBPath)

		return nil
	})
}

func newTreesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreesDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if the tree has members")

	return cmd
}

func runTreesDelete(cmd *cobra.Command, name string, force bool) error {
	ctx := cmd.Context()

	return withTreeHandler(func(handler *handlers.TreeHandler) error {
		if err := handler.HandleDelete(ctx, name, force); err != nil {
			return fmt.Errorf("deleting tree: %w", err)
		}

		fmt.Printf("Deleted tree %q\n", name)
		return nil
	})
}
