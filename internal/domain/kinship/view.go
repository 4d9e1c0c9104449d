package kinship

import (
	"slices"
	"time"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

// Gender of a member as far as kinship terms are concerned.
type Gender uint8

const (
	Unspecified Gender = iota
	Male
	Female
)

// Member is the part of a family member record that kinship resolution looks
// at. A zero BirthDate means the date is unknown.
type Member struct {
	ID          string
	Gender      Gender
	BirthDate   time.Time
	ParentIDs   []string
	ChildrenIDs []string
	SpouseID    string
}

// birthLayouts are tried in order when reading a member's birth date.
var birthLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseBirthDate reads a stored birth date. Empty or unparseable input yields
// the zero time, which the resolvers treat as unknown.
func ParseBirthDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range birthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func genderOf(g entities.Gender) Gender {
	switch entities.ParseGender(string(g)) {
	case entities.GenderMale:
		return Male
	case entities.GenderFemale:
		return Female
	default:
		return Unspecified
	}
}

// Project reduces full member records to the kinship view. Order and ids are
// kept as-is; duplicate ids and dangling references pass through untouched.
func Project(members []entities.FamilyMember) []Member {
	out := make([]Member, len(members))
	for i := range members {
		m := &members[i]
		out[i] = Member{
			ID:          m.ID,
			Gender:      genderOf(m.Gender),
			BirthDate:   ParseBirthDate(m.BirthDate),
			ParentIDs:   slices.Clone(m.ParentIDs),
			ChildrenIDs: slices.Clone(m.ChildrenIDs),
			SpouseID:    m.SpouseID,
		}
	}
	return out
}

// elderThan reports whether m was born strictly before ref. Unknown dates on
// either side mean not elder.
func (m *Member) elderThan(ref *Member) bool {
	if m.BirthDate.IsZero() || ref.BirthDate.IsZero() {
		return false
	}
	return m.BirthDate.Before(ref.BirthDate)
}

func (m *Member) hasParent(id string) bool { return slices.Contains(m.ParentIDs, id) }
func (m *Member) hasChild(id string) bool  { return slices.Contains(m.ChildrenIDs, id) }

// index maps ids to members. When an id occurs more than once the first
// occurrence wins, as a front-to-back scan would.
type index map[string]*Member

func newIndex(view []Member) index {
	idx := make(index, len(view))
	for i := range view {
		if _, dup := idx[view[i].ID]; !dup {
			idx[view[i].ID] = &view[i]
		}
	}
	return idx
}

// parents yields the members listed as parents of m that exist in the roster.
func (idx index) parents(m *Member) []*Member {
	return idx.resolve(m.ParentIDs)
}

// children yields the members listed as children of m that exist in the roster.
func (idx index) children(m *Member) []*Member {
	return idx.resolve(m.ChildrenIDs)
}

func (idx index) resolve(ids []string) []*Member {
	out := make([]*Member, 0, len(ids))
	for _, id := range ids {
		if p, ok := idx[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
