package kinship

import "fmt"

// Label is one kinship category from a closed taxonomy. The zero value is
// LabelUnknown.
type Label uint8

const (
	LabelUnknown Label = iota
	LabelSelf
	LabelFamilyMember

	LabelHusband
	LabelWife
	LabelSpouse

	LabelFather
	LabelMother
	LabelParent

	LabelSon
	LabelDaughter
	LabelChild

	LabelBrother
	LabelSister
	LabelSibling
	LabelElderBrother
	LabelElderSister
	LabelHalfBrother
	LabelHalfSister
	LabelHalfSibling

	LabelFatherInLaw
	LabelMotherInLaw
	LabelParentInLaw
	LabelSonInLaw
	LabelDaughterInLaw
	LabelChildInLaw
	LabelSiblingInLaw

	LabelGrandfather
	LabelGrandmother
	LabelGrandparent
	LabelGrandson
	LabelGranddaughter
	LabelGrandchild

	LabelElderUncle
	LabelYoungerUncle
	LabelElderAunt
	LabelYoungerAunt
	LabelUncleAunt

	LabelCousinBrother
	LabelCousinSister
	LabelCousinSibling

	LabelGreatGrandfather
	LabelGreatGrandmother
	LabelGreatGrandparent
	LabelGreatGrandson
	LabelGreatGranddaughter
	LabelGreatGrandchild

	LabelNephew
	LabelNiece
	LabelNephewNiece

	LabelSecondCousinBrother
	LabelSecondCousinSister
	LabelSecondCousinSibling

	LabelCousinUncle
	LabelCousinGrandson
	LabelCousinGranddaughter
	LabelCousinGrandchild

	LabelGreatUncle
	LabelGreatAunt
	LabelGreatUncleAunt

	LabelNephewSon
	LabelNephewDaughter
	LabelNephewChild

	labelCount
)

var labelKeys = [labelCount]string{
	LabelUnknown:      "UNKNOWN",
	LabelSelf:         "SELF",
	LabelFamilyMember: "FAMILY_MEMBER",

	LabelHusband: "HUSBAND",
	LabelWife:    "WIFE",
	LabelSpouse:  "SPOUSE",

	LabelFather: "FATHER",
	LabelMother: "MOTHER",
	LabelParent: "PARENT",

	LabelSon:      "SON",
	LabelDaughter: "DAUGHTER",
	LabelChild:    "CHILD",

	LabelBrother:      "BROTHER",
	LabelSister:       "SISTER",
	LabelSibling:      "SIBLING",
	LabelElderBrother: "ELDER_BROTHER",
	LabelElderSister:  "ELDER_SISTER",
	LabelHalfBrother:  "HALF_BROTHER",
	LabelHalfSister:   "HALF_SISTER",
	LabelHalfSibling:  "HALF_SIBLING",

	LabelFatherInLaw:   "FATHER_IN_LAW",
	LabelMotherInLaw:   "MOTHER_IN_LAW",
	LabelParentInLaw:   "PARENT_IN_LAW",
	LabelSonInLaw:      "SON_IN_LAW",
	LabelDaughterInLaw: "DAUGHTER_IN_LAW",
	LabelChildInLaw:    "CHILD_IN_LAW",
	LabelSiblingInLaw:  "SIBLING_IN_LAW",

	LabelGrandfather:   "GRANDFATHER",
	LabelGrandmother:   "GRANDMOTHER",
	LabelGrandparent:   "GRANDPARENT",
	LabelGrandson:      "GRANDSON",
	LabelGranddaughter: "GRANDDAUGHTER",
	LabelGrandchild:    "GRANDCHILD",

	LabelElderUncle:   "ELDER_UNCLE",
	LabelYoungerUncle: "YOUNGER_UNCLE",
	LabelElderAunt:    "ELDER_AUNT",
	LabelYoungerAunt:  "YOUNGER_AUNT",
	LabelUncleAunt:    "UNCLE_AUNT",

	LabelCousinBrother: "COUSIN_BROTHER",
	LabelCousinSister:  "COUSIN_SISTER",
	LabelCousinSibling: "COUSIN_SIBLING",

	LabelGreatGrandfather:   "GREAT_GRANDFATHER",
	LabelGreatGrandmother:   "GREAT_GRANDMOTHER",
	LabelGreatGrandparent:   "GREAT_GRANDPARENT",
	LabelGreatGrandson:      "GREAT_GRANDSON",
	LabelGreatGranddaughter: "GREAT_GRANDDAUGHTER",
	LabelGreatGrandchild:    "GREAT_GRANDCHILD",

	LabelNephew:      "NEPHEW",
	LabelNiece:       "NIECE",
	LabelNephewNiece: "NEPHEW_NIECE",

	LabelSecondCousinBrother: "SECOND_COUSIN_BROTHER",
	LabelSecondCousinSister:  "SECOND_COUSIN_SISTER",
	LabelSecondCousinSibling: "SECOND_COUSIN_SIBLING",

	LabelCousinUncle:         "COUSIN_UNCLE",
	LabelCousinGrandson:      "COUSIN_GRANDSON",
	LabelCousinGranddaughter: "COUSIN_GRANDDAUGHTER",
	LabelCousinGrandchild:    "COUSIN_GRANDCHILD",

	LabelGreatUncle:     "GREAT_UNCLE",
	LabelGreatAunt:      "GREAT_AUNT",
	LabelGreatUncleAunt: "GREAT_UNCLE_AUNT",

	LabelNephewSon:      "NEPHEW_SON",
	LabelNephewDaughter: "NEPHEW_DAUGHTER",
	LabelNephewChild:    "NEPHEW_CHILD",
}

var labelsByKey = func() map[string]Label {
	m := make(map[string]Label, labelCount)
	for i, k := range labelKeys {
		m[k] = Label(i)
	}
	return m
}()

// String returns the stable upper-snake key of the label, e.g. "ELDER_BROTHER".
func (l Label) String() string {
	if l >= labelCount {
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
	return labelKeys[l]
}

// Valid reports whether l is a member of the taxonomy.
func (l Label) Valid() bool {
	return l < labelCount
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid label %d", uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(b []byte) error {
	v, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseLabel returns the label whose key is s.
func ParseLabel(s string) (Label, error) {
	l, ok := labelsByKey[s]
	if !ok {
		return LabelUnknown, fmt.Errorf("unknown kinship label %q", s)
	}
	return l, nil
}

// AllLabels returns every label in declaration order.
func AllLabels() []Label {
	out := make([]Label, labelCount)
	for i := range out {
		out[i] = Label(i)
	}
	return out
}

// gendered picks the masculine, feminine, or neutral variant of a category.
type gendered struct {
	male, female, neutral Label
}

func (g gendered) pick(m *Member) Label {
	switch m.Gender {
	case Male:
		return g.male
	case Female:
		return g.female
	default:
		return g.neutral
	}
}

// seniorityGendered is a category with distinct elder variants.
type seniorityGendered struct {
	elder   gendered
	younger gendered
}

func (s seniorityGendered) pick(m *Member, elder bool) Label {
	if elder {
		return s.elder.pick(m)
	}
	return s.younger.pick(m)
}

var (
	spouseTerms      = gendered{LabelHusband, LabelWife, LabelSpouse}
	parentTerms      = gendered{LabelFather, LabelMother, LabelParent}
	childTerms       = gendered{LabelSon, LabelDaughter, LabelChild}
	halfSiblingTerms = gendered{LabelHalfBrother, LabelHalfSister, LabelHalfSibling}
	parentInLawTerms = gendered{LabelFatherInLaw, LabelMotherInLaw, LabelParentInLaw}
	childInLawTerms  = gendered{LabelSonInLaw, LabelDaughterInLaw, LabelChildInLaw}

	siblingTerms = seniorityGendered{
		elder:   gendered{LabelElderBrother, LabelElderSister, LabelSibling},
		younger: gendered{LabelBrother, LabelSister, LabelSibling},
	}
	siblingInLawTerms = seniorityGendered{
		elder:   gendered{LabelElderBrother, LabelElderSister, LabelSiblingInLaw},
		younger: gendered{LabelBrother, LabelSister, LabelSiblingInLaw},
	}

	grandparentTerms      = gendered{LabelGrandfather, LabelGrandmother, LabelGrandparent}
	grandchildTerms       = gendered{LabelGrandson, LabelGranddaughter, LabelGrandchild}
	greatGrandparentTerms = gendered{LabelGreatGrandfather, LabelGreatGrandmother, LabelGreatGrandparent}
	greatGrandchildTerms  = gendered{LabelGreatGrandson, LabelGreatGranddaughter, LabelGreatGrandchild}

	auntUncleTerms = seniorityGendered{
		elder:   gendered{LabelElderUncle, LabelElderAunt, LabelUncleAunt},
		younger: gendered{LabelYoungerUncle, LabelYoungerAunt, LabelUncleAunt},
	}
	nephewNieceTerms    = gendered{LabelNephew, LabelNiece, LabelNephewNiece}
	nephewChildTerms    = gendered{LabelNephewSon, LabelNephewDaughter, LabelNephewChild}
	cousinTerms         = gendered{LabelCousinBrother, LabelCousinSister, LabelCousinSibling}
	greatAuntUncleTerms = gendered{LabelGreatUncle, LabelGreatAunt, LabelGreatUncleAunt}
	parentCousinTerms   = gendered{LabelCousinBrother, LabelCousinSister, LabelCousinUncle}
	secondCousinTerms   = gendered{LabelSecondCousinBrother, LabelSecondCousinSister, LabelSecondCousinSibling}
	cousinChildTerms    = gendered{LabelCousinGrandson, LabelCousinGranddaughter, LabelCousinGrandchild}
)
