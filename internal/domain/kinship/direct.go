package kinship

import "slices"

// resolveDirect answers relationships that are at most one parent, child or
// spouse edge away, plus in-laws reached through from's spouse. ok is false
// when nothing matched and the extended resolver should be consulted.
func (e *Engine) resolveDirect(from, to *Member) (Label, bool) {
	switch {
	case from.SpouseID != "" && from.SpouseID == to.ID:
		return spouseTerms.pick(to), true
	case from.hasParent(to.ID):
		return parentTerms.pick(to), true
	case from.hasChild(to.ID):
		return childTerms.pick(to), true
	}

	if l, ok := siblingOf(from, to); ok {
		return l, true
	}
	return e.inLawOf(from, to)
}

// sharedParents returns the entries of a.ParentIDs that also appear in
// b.ParentIDs, keeping a's order and multiplicity.
func sharedParents(a, b *Member) []string {
	var shared []string
	for _, id := range a.ParentIDs {
		if slices.Contains(b.ParentIDs, id) {
			shared = append(shared, id)
		}
	}
	return shared
}

// siblingOf classifies to as a full or half sibling of from. Full siblings
// share every parent on both sides and carry a seniority variant.
func siblingOf(from, to *Member) (Label, bool) {
	shared := sharedParents(from, to)
	if len(shared) == 0 {
		return LabelUnknown, false
	}
	if len(shared) == len(from.ParentIDs) && len(shared) == len(to.ParentIDs) {
		return siblingTerms.pick(to, to.elderThan(from)), true
	}
	return halfSiblingTerms.pick(to), true
}

// inLawOf looks at relatives of from's spouse. Seniority for a spouse's
// sibling is measured against the spouse.
func (e *Engine) inLawOf(from, to *Member) (Label, bool) {
	if from.SpouseID == "" {
		return LabelUnknown, false
	}
	spouse, ok := e.idx[from.SpouseID]
	if !ok {
		return LabelUnknown, false
	}

	switch {
	case spouse.hasParent(to.ID):
		return parentInLawTerms.pick(to), true
	case spouse.hasChild(to.ID):
		return childInLawTerms.pick(to), true
	case len(sharedParents(spouse, to)) > 0:
		return siblingInLawTerms.pick(to, to.elderThan(spouse)), true
	}
	return LabelUnknown, false
}
