package entities

import (
	"slices"
	"strings"
	"time"
)

// Gender is the recorded sex of a family member. Anything other than Male or
// Female selects gender-neutral kinship terms.
type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "Male"
	GenderFemale      Gender = "Female"
	GenderOther       Gender = "Other"
)

// ParseGender maps free-form input onto a Gender. Unrecognized values become
// GenderUnspecified.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other", "o":
		return GenderOther
	default:
		return GenderUnspecified
	}
}

// Position is the layout coordinate of a member node in the tree view.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FamilyMember is a person in a family tree together with the ids of the
// people they are directly linked to. Links are stored exactly as supplied;
// nothing guarantees that a parent lists the child back.
type FamilyMember struct {
	ID              string    `json:"id"`
	Name            string    `json:"name" validate:"required"`
	Gender          Gender    `json:"gender,omitempty" validate:"omitempty,gender"`
	BirthDate       string    `json:"birthDate" validate:"omitempty,isodate"`
	DeathDate       string    `json:"deathDate,omitempty" validate:"omitempty,isodate"`
	Biography       string    `json:"biography"`
	ProfilePicture  string    `json:"profilePicture"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty" validate:"omitempty,email"`
	SocialMediaLink string    `json:"socialMediaLink,omitempty" validate:"omitempty,url"`
	SpouseID        string    `json:"spouseId,omitempty"`
	ParentIDs       []string  `json:"parentIds"`
	ChildrenIDs     []string  `json:"childrenIds"`
	Position        Position  `json:"position"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// HasParent reports whether id is listed among the member's parents.
func (m *FamilyMember) HasParent(id string) bool {
	return slices.Contains(m.ParentIDs, id)
}

// HasChild reports whether id is listed among the member's children.
func (m *FamilyMember) HasChild(id string) bool {
	return slices.Contains(m.ChildrenIDs, id)
}

// AddParent appends id to the parent list unless it is already there.
// It reports whether the list changed.
func (m *FamilyMember) AddParent(id string) bool {
	if m.HasParent(id) {
		return false
	}
	m.ParentIDs = append(m.ParentIDs, id)
	return true
}

// AddChild appends id to the children list unless it is already there.
// It reports whether the list changed.
func (m *FamilyMember) AddChild(id string) bool {
	if m.HasChild(id) {
		return false
	}
	m.ChildrenIDs = append(m.ChildrenIDs, id)
	return true
}

// RemoveParent drops id from the parent list and reports whether it was present.
func (m *FamilyMember) RemoveParent(id string) bool {
	n := len(m.ParentIDs)
	m.ParentIDs = slices.DeleteFunc(m.ParentIDs, func(p string) bool { return p == id })
	return len(m.ParentIDs) != n
}

// RemoveChild drops id from the children list and reports whether it was present.
func (m *FamilyMember) RemoveChild(id string) bool {
	n := len(m.ChildrenIDs)
	m.ChildrenIDs = slices.DeleteFunc(m.ChildrenIDs, func(c string) bool { return c == id })
	return len(m.ChildrenIDs) != n
}

// Clone returns a deep copy so that edits to the id slices don't leak.
func (m FamilyMember) Clone() FamilyMember {
	m.ParentIDs = slices.Clone(m.ParentIDs)
	m.ChildrenIDs = slices.Clone(m.ChildrenIDs)
	return m
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
