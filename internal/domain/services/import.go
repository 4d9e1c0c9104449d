package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing members during import.
type ConflictStrategy string

const (
	// ConflictSkip skips members that already exist (by ID).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing members with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
	// ConflictReplace discards the stored roster and stores the import in its place.
	ConflictReplace ConflictStrategy = "replace"
)

// ParseConflictStrategy validates s as a ConflictStrategy.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch cs := ConflictStrategy(s); cs {
	case ConflictSkip, ConflictOverwrite, ConflictReplace:
		return cs, nil
	default:
		return "", fmt.Errorf("invalid conflict strategy %q (valid: skip, overwrite, replace)", s)
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing members
}

// ImportError represents an error for a specific member during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService handles importing rosters from external sources. Imported
// records are stored as given: links are not repaired or checked.
type ImportService struct {
	relationalDB ports.RelationalDB
}

// NewImportService creates a new import service.
func NewImportService(relationalDB ports.RelationalDB) *ImportService {
	return &ImportService{
		relationalDB: relationalDB,
	}
}

// Import validates and imports a parsed roster. Invalid rows are reported in
// the result and never abort the import.
func (s *ImportService) Import(ctx context.Context, tree *parsers.RawTree, opts ImportOptions) (*ImportResult, error) {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	if _, err := ParseConflictStrategy(string(opts.OnConflict)); err != nil {
		return nil, err
	}

	result := &ImportResult{}

	// Validate all members first
	valid, validationErrors, err := s.validateMembers(tree.Members)
	if err != nil {
		return nil, err
	}
	result.Errors = validationErrors

	members := s.convertToEntities(valid)

	if opts.OnConflict == ConflictReplace {
		return s.replace(ctx, tree.FamilyName, members, result, opts.DryRun)
	}

	if len(members) == 0 {
		return result, nil
	}

	if opts.OnConflict == ConflictSkip {
		toSave, skipped, err := s.filterExisting(ctx, members)
		if err != nil {
			return nil, err
		}
		members = toSave
		result.Skipped = skipped
	}

	if opts.DryRun {
		result.Imported = len(members)
		return result, nil
	}

	if len(members) > 0 {
		if err := s.preserveCreatedAt(ctx, members); err != nil {
			return nil, err
		}
		if err := s.relationalDB.SaveMembers(ctx, members); err != nil {
			return nil, fmt.Errorf("saving members: %w", err)
		}
	}
	result.Imported = len(members)

	if err := s.logImport(ctx, opts.OnConflict, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ImportService) replace(
	ctx context.Context,
	familyName string,
	members []*entities.FamilyMember,
	result *ImportResult,
	dryRun bool,
) (*ImportResult, error) {
	result.Imported = len(members)
	if dryRun {
		return result, nil
	}

	if familyName == "" {
		current, err := s.relationalDB.FamilyName(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading family name: %w", err)
		}
		familyName = current
	}

	tree := &entities.FamilyTree{FamilyName: familyName, Members: make([]entities.FamilyMember, len(members))}
	for i, m := range members {
		tree.Members[i] = *m
	}
	if err := s.relationalDB.ReplaceRoster(ctx, tree); err != nil {
		return nil, fmt.Errorf("replacing roster: %w", err)
	}

	if err := s.logImport(ctx, ConflictReplace, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ImportService) logImport(ctx context.Context, strategy ConflictStrategy, result *ImportResult) error {
	if err := s.relationalDB.LogAction(ctx, entities.AuditRosterImport, "", map[string]any{
		"strategy": string(strategy),
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"errors":   len(result.Errors),
	}); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// validateMembers validates raw members and returns valid ones with any errors.
// A repeated id is reported on every occurrence after the first.
func (s *ImportService) validateMembers(raws []parsers.RawMember) ([]parsers.RawMember, []ImportError, error) {
	valid := make([]parsers.RawMember, 0, len(raws))
	var errors []ImportError
	seen := make(map[string]int, len(raws))

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		problem, err := checkStruct(raw)
		if err != nil {
			return nil, nil, err
		}
		if problem != nil {
			errors = append(errors, ImportError{
				Line:    lineNum,
				Field:   problem.Field,
				Value:   problem.Value,
				Message: problem.Message,
			})
			continue
		}

		if raw.ID != "" {
			if first, dup := seen[raw.ID]; dup {
				errors = append(errors, ImportError{
					Line:    lineNum,
					Field:   "id",
					Value:   raw.ID,
					Message: fmt.Sprintf("duplicate id %q (first seen on line %d)", raw.ID, first),
				})
				continue
			}
			seen[raw.ID] = lineNum
		}

		valid = append(valid, *raw)
	}

	return valid, errors, nil
}

// convertToEntities converts raw members to domain entities.
func (s *ImportService) convertToEntities(raws []parsers.RawMember) []*entities.FamilyMember {
	members := make([]*entities.FamilyMember, 0, len(raws))
	now := time.Now()

	for i := range raws {
		raw := &raws[i]
		id := raw.ID
		if id == "" {
			id = uuid.New().String()
		}

		member := raw.Member()
		member.ID = id
		member.CreatedAt = now
		member.UpdatedAt = now
		members = append(members, &member)
	}

	return members
}

// preserveCreatedAt keeps the CreatedAt timestamp of members being overwritten.
func (s *ImportService) preserveCreatedAt(ctx context.Context, members []*entities.FamilyMember) error {
	existing, err := s.relationalDB.FindMembersByIDs(ctx, memberIDs(members))
	if err != nil {
		return fmt.Errorf("looking up existing members: %w", err)
	}

	createdAtMap := make(map[string]time.Time, len(existing))
	for _, m := range existing {
		createdAtMap[m.ID] = m.CreatedAt
	}
	for _, m := range members {
		if createdAt, ok := createdAtMap[m.ID]; ok {
			m.CreatedAt = createdAt
		}
	}
	return nil
}

// filterExisting filters out members that already exist in the database.
func (s *ImportService) filterExisting(ctx context.Context, members []*entities.FamilyMember) ([]*entities.FamilyMember, int, error) {
	// Single batch query instead of N queries
	existing, err := s.relationalDB.FindMembersByIDs(ctx, memberIDs(members))
	if err != nil {
		return nil, 0, fmt.Errorf("checking existing members: %w", err)
	}

	exists := make(map[string]bool, len(existing))
	for _, m := range existing {
		exists[m.ID] = true
	}

	toSave := make([]*entities.FamilyMember, 0, len(members))
	var skipped int
	for _, m := range members {
		if exists[m.ID] {
			skipped++
		} else {
			toSave = append(toSave, m)
		}
	}

	return toSave, skipped, nil
}

func memberIDs(members []*entities.FamilyMember) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
