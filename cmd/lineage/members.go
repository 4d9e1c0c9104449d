package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

func newMembersCmd() *cobra.Command {
	var flags membersListFlags

	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage the members of a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersList(cmd, flags)
		},
	}
	flags.register(cmd)

	cmd.AddCommand(
		newMembersListCmd(),
		newMembersShowCmd(),
		newMembersAddCmd(),
		newMembersEditCmd(),
		newMembersDeleteCmd(),
	)

	return cmd
}

type membersListFlags struct {
	search string
	limit  int
	offset int
	json   bool
}

func (f *membersListFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Search members by name")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", DefaultListLimit, "Maximum number of members to list")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Number of members to skip")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print JSON")
}

func newMembersListCmd() *cobra.Command {
	var flags membersListFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members in roster order",
		Long: `List the members of a tree in the order they were added.

Examples:
  lineage members list -t sharma
  lineage members list -t sharma --search sita
  lineage members list -t sharma --limit 20 --offset 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersList(cmd, flags)
		},
	}
	flags.register(cmd)

	return cmd
}

func runMembersList(cmd *cobra.Command, flags membersListFlags) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		var result *handlers.MemberListResult
		var err error

		if flags.search != "" {
			result, err = d.MemberHandler.HandleSearch(ctx, flags.search, flags.limit)
		} else {
			result, err = d.MemberHandler.HandleList(ctx, flags.limit, flags.offset)
		}
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}

		if flags.json {
			return printJSON(result)
		}

		if len(result.Members) == 0 {
			fmt.Println("No members found.")
			return nil
		}

		fmt.Printf("Members (%d total):\n\n", result.Total)
		fmt.Printf("  %-38s %-24s %-7s %s\n", "ID", "NAME", "GENDER", "BORN")
		for _, m := range result.Members {
			fmt.Printf("  %-38s %-24s %-7s %s\n", m.ID, m.Name, genderText(m.Gender), m.BirthDate)
		}

		return nil
	})
}

func newMembersShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <member>",
		Short: "Show a member and its recent history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersShow(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func runMembersShow(cmd *cobra.Command, ref string, asJSON bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		detail, err := d.MemberHandler.HandleShow(ctx, ref)
		if err != nil {
			return fmt.Errorf("showing member: %w", err)
		}

		if asJSON {
			return printJSON(detail)
		}

		m := detail.Member
		fmt.Printf("%s (%s)\n", m.Name, m.ID)
		printField("Gender", genderText(m.Gender))
		printField("Born", m.BirthDate)
		printField("Died", m.DeathDate)
		printField("Spouse", m.SpouseID)
		printField("Parents", strings.Join(m.ParentIDs, ", "))
		printField("Children", strings.Join(m.ChildrenIDs, ", "))
		printField("Phone", m.Phone)
		printField("Email", m.Email)
		printField("Social", m.SocialMediaLink)
		printField("Picture", m.ProfilePicture)
		printField("Biography", m.Biography)

		if len(detail.History) > 0 {
			fmt.Println("\nHistory:")
			history := detail.History
			if len(history) > DefaultHistoryLimit {
				history = history[:DefaultHistoryLimit]
			}
			for _, entry := range history {
				fmt.Printf("  %s  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Action)
			}
		}

		return nil
	})
}

// memberFlags are the member fields settable from the command line.
type memberFlags struct {
	id              string
	gender          string
	birthDate       string
	deathDate       string
	biography       string
	profilePicture  string
	phone           string
	email           string
	socialMediaLink string
	spouse          string
	parents         []string
	children        []string
}

func (f *memberFlags) registerFields(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "", "Gender (male, female, other)")
	cmd.Flags().StringVarP(&f.birthDate, "born", "b", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.deathDate, "died", "", "Death date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.biography, "bio", "", "Biography")
	cmd.Flags().StringVar(&f.profilePicture, "picture", "", "Profile picture URL")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.socialMediaLink, "social", "", "Social media link")
}

func newMembersAddCmd() *cobra.Command {
	var flags memberFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a member",
		Long: `Add a member to a tree. Listed relatives are linked back to the new
member: the spouse points at it, parents list it as a child and children
list it as a parent.

Examples:
  lineage members add "Ram Sharma" -t sharma --gender male --born 1990-01-01
  lineage members add Sita -t sharma -g female --parent hari --parent gita`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersAdd(cmd, args[0], flags)
		},
	}

	flags.registerFields(cmd)
	cmd.Flags().StringVar(&flags.id, "id", "", "Member id (generated when empty)")
	cmd.Flags().StringVar(&flags.spouse, "spouse", "", "Spouse id")
	cmd.Flags().StringSliceVar(&flags.parents, "parent", nil, "Parent id (repeatable)")
	cmd.Flags().StringSliceVar(&flags.children, "child", nil, "Child id (repeatable)")

	return cmd
}

func runMembersAdd(cmd *cobra.Command, name string, flags memberFlags) error {
	ctx := cmd.Context()

	draft := &entities.FamilyMember{
		ID:              flags.id,
		Name:            name,
		Gender:          entities.Gender(flags.gender),
		BirthDate:       flags.birthDate,
		DeathDate:       flags.deathDate,
		Biography:       flags.biography,
		ProfilePicture:  flags.profilePicture,
		Phone:           flags.phone,
		Email:           flags.email,
		SocialMediaLink: flags.socialMediaLink,
		SpouseID:        flags.spouse,
		ParentIDs:       flags.parents,
		ChildrenIDs:     flags.children,
	}

	return withDeps(ctx, func(d *Deps) error {
		member, err := d.MemberHandler.HandleAdd(ctx, draft)
		if err != nil {
			return fmt.Errorf("adding member: %w", err)
		}

		fmt.Printf("Added %s (%s)\n", member.Name, member.ID)
		return nil
	})
}

func newMembersEditCmd() *cobra.Command {
	var flags memberFlags
	var name string

	cmd := &cobra.Command{
		Use:   "edit <member>",
		Short: "Edit a member's details",
		Long: `Edit the details of a member. Only the flags given are changed.
Use 'lineage link' to change parents, children or spouse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembersEdit(cmd, args[0], name, flags)
		},
	}

	flags.registerFields(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name")

	return cmd
}

func runMembersEdit(cmd *cobra.Command, ref, name string, flags memberFlags) error {
	ctx := cmd.Context()
	changed := func(flag, v string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		return &v
	}

	edit := handlers.MemberEdit{
		Name:            changed("name", name),
		Gender:          changed("gender", flags.gender),
		BirthDate:       changed("born", flags.birthDate),
		DeathDate:       changed("died", flags.deathDate),
		Biography:       changed("bio", flags.biography),
		ProfilePicture:  changed("picture", flags.profilePicture),
		Phone:           changed("phone", flags.phone),
		Email:           changed("email", flags.email),
		SocialMediaLink: changed("social", flags.socialMediaLink),
	}

	return withDeps(ctx, func(d *Deps) error {
		member, err := d.MemberHandler.HandleEdit(ctx, ref, edit)
		if err != nil {
			return fmt.Errorf("editing member: %w", err)
		}

		fmt.Printf("Updated %s (%s)\n", member.Name, member.ID)
		return nil
	})
}

func newMembersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <member>",
		Short: "Delete a member",
		Long:  "Deletes a member and removes it from its relatives' parent, child and spouse links.",
		Args:  cobra.ExactArgs(1),
		RunE:  runMembersDelete,
	}
}

func runMembersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		member, err := d.MemberHandler.HandleDelete(ctx, args[0])
		if err != nil {
			return fmt.Errorf("deleting member: %w", err)
		}

		fmt.Printf("Deleted %s (%s)\n", member.Name, member.ID)
		return nil
	})
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-10s %s\n", label+":", value)
}

func genderText(g entities.Gender) string {
	if g == entities.GenderUnspecified {
		return "-"
	}
	return string(g)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
