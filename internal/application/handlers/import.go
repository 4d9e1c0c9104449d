package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/parsers"
)

// ImportHandler handles importing rosters from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "csv", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing members
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	FamilyName string
	Imported   int
	Skipped    int
	Errors     []services.ImportError
}

// Handle imports a roster from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	// Get parser
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	tree, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	// An empty file only clears the roster when replacing it.
	if len(tree.Members) == 0 && opts.OnConflict != services.ConflictReplace {
		return &ImportResult{FamilyName: tree.FamilyName}, nil
	}

	serviceOpts := services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	}

	serviceResult, err := h.service.Import(ctx, tree, serviceOpts)
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		FamilyName: tree.FamilyName,
		Imported:   serviceResult.Imported,
		Skipped:    serviceResult.Skipped,
		Errors:     serviceResult.Errors,
	}, nil
}
