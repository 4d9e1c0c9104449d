package entities

// FamilyTree is the exchange format of a whole roster: an optional family
// name and the members in display order.
type FamilyTree struct {
	FamilyName string         `json:"familyName,omitempty"`
	Members    []FamilyMember `json:"members"`
}
