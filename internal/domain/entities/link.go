package entities

import "fmt"

// LinkKind names one of the edges a member record can carry.
type LinkKind string

const (
	LinkParent LinkKind = "parent"
	LinkChild  LinkKind = "child"
	LinkSpouse LinkKind = "spouse"
)

// ValidLinkKinds lists the accepted kinds in display order.
var ValidLinkKinds = []LinkKind{LinkParent, LinkChild, LinkSpouse}

// ParseLinkKind validates s as a LinkKind.
func ParseLinkKind(s string) (LinkKind, error) {
	for _, k := range ValidLinkKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid link kind %q (valid: parent, child, spouse)", s)
}

// Inverse returns the kind of the edge pointing back from the target.
func (k LinkKind) Inverse() LinkKind {
	switch k {
	case LinkParent:
		return LinkChild
	case LinkChild:
		return LinkParent
	default:
		return k
	}
}
