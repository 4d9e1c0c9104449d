// Package parsers provides parsers for importing family rosters from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

// RawMember represents a member parsed from an external source before validation.
type RawMember struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name" validate:"required"`
	Gender          string   `json:"gender,omitempty" validate:"omitempty,gender"`
	BirthDate       string   `json:"birthDate,omitempty" validate:"omitempty,isodate"`
	DeathDate       string   `json:"deathDate,omitempty" validate:"omitempty,isodate"`
	Biography       string   `json:"biography,omitempty"`
	ProfilePicture  string   `json:"profilePicture,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	SocialMediaLink string   `json:"socialMediaLink,omitempty" validate:"omitempty,url"`
	SpouseID        string   `json:"spouseId,omitempty"`
	ParentIDs       []string `json:"parentIds,omitempty"`
	ChildrenIDs     []string `json:"childrenIds,omitempty"`
	Position        Position `json:"position"`
	LineNum         int      `json:"-"` // Line number in source file (set by parser)
}

// Member converts the row to a domain member. The id is copied as is, so an
// empty id stays empty.
func (r *RawMember) Member() entities.FamilyMember {
	return entities.FamilyMember{
		ID:              r.ID,
		Name:            r.Name,
		Gender:          entities.ParseGender(r.Gender),
		BirthDate:       r.BirthDate,
		DeathDate:       r.DeathDate,
		Biography:       r.Biography,
		ProfilePicture:  r.ProfilePicture,
		Phone:           r.Phone,
		Email:           r.Email,
		SocialMediaLink: r.SocialMediaLink,
		SpouseID:        r.SpouseID,
		ParentIDs:       r.ParentIDs,
		ChildrenIDs:     r.ChildrenIDs,
		Position:        entities.Position{X: r.Position.X, Y: r.Position.Y},
	}
}

// FamilyTree converts every row of the tree, keeping row order.
func (t *RawTree) FamilyTree() *entities.FamilyTree {
	members := make([]entities.FamilyMember, len(t.Members))
	for i := range t.Members {
		members[i] = t.Members[i].Member()
	}
	return &entities.FamilyTree{FamilyName: t.FamilyName, Members: members}
}

// Position is a node coordinate as found in the source.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RawTree is a parsed roster with its optional family name.
type RawTree struct {
	FamilyName string      `json:"familyName,omitempty"`
	Members    []RawMember `json:"members"`
}

// Parser defines the interface for parsing rosters from various formats.
type Parser interface {
	Parse(r io.Reader) (*RawTree, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
