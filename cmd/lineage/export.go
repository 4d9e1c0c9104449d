package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/parsers"
)

type exportFlags struct {
	format string
	output string
}

type exporter struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a tree to file",
		Long: `Exports the members of a tree to JSON, CSV, or markdown format.
JSON and CSV output can be imported again with 'lineage import'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		tree, err := d.MemberHandler.HandleExport(ctx)
		if err != nil {
			return fmt.Errorf("reading roster: %w", err)
		}

		e := &exporter{
			format: flags.format,
			output: flags.output,
		}
		return e.export(tree)
	})
}

func (e *exporter) export(tree *entities.FamilyTree) (err error) {
	var w io.Writer
	var f *os.File

	if e.output != "" {
		f, err = os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = os.Stdout
	}

	if err := e.formatTree(w, tree); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Printf("Exported %d members to %s\n", len(tree.Members), e.output)
	}

	return nil
}

func (e *exporter) formatTree(w io.Writer, tree *entities.FamilyTree) error {
	switch e.format {
	case "json":
		return formatJSON(w, tree)
	case "csv":
		return formatCSV(w, tree.Members)
	case "markdown":
		return formatMarkdown(w, tree)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

// formatJSON writes the familyName/members envelope read by the JSON parser.
func formatJSON(w io.Writer, tree *entities.FamilyTree) error {
	out := *tree
	if out.Members == nil {
		out.Members = []entities.FamilyMember{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func formatCSV(w io.Writer, members []entities.FamilyMember) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(parsers.CSVColumns); err != nil {
		return err
	}

	for _, m := range members {
		row := []string{
			m.ID,
			m.Name,
			string(m.Gender),
			m.BirthDate,
			m.DeathDate,
			m.SpouseID,
			strings.Join(m.ParentIDs, parsers.ListSeparator),
			strings.Join(m.ChildrenIDs, parsers.ListSeparator),
			m.Biography,
			m.ProfilePicture,
			m.Phone,
			m.Email,
			m.SocialMediaLink,
			formatCoord(m.Position.X),
			formatCoord(m.Position.Y),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMarkdown(w io.Writer, tree *entities.FamilyTree) error {
	title := "Family Tree"
	if tree.FamilyName != "" {
		title = tree.FamilyName + " Family Tree"
	}
	if _, err := fmt.Fprintf(w, "# %s\n\nTotal: %d members\n\n", escapeMarkdown(title), len(tree.Members)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Name | Gender | Born | Died | Spouse | Parents |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|--------|------|------|--------|---------|\n"); err != nil {
		return err
	}

	names := make(map[string]string, len(tree.Members))
	for _, m := range tree.Members {
		if _, ok := names[m.ID]; !ok {
			names[m.ID] = m.Name
		}
	}
	nameOf := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	for _, m := range tree.Members {
		parents := make([]string, 0, len(m.ParentIDs))
		for _, id := range m.ParentIDs {
			parents = append(parents, nameOf(id))
		}
		spouse := ""
		if m.SpouseID != "" {
			spouse = nameOf(m.SpouseID)
		}

		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			escapeMarkdown(m.Name),
			m.Gender,
			m.BirthDate,
			m.DeathDate,
			escapeMarkdown(spouse),
			escapeMarkdown(strings.Join(parents, ", ")),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
