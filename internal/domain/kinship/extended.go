package kinship

// resolveExtended walks up to four parent/child hops from the query pair.
// Tiers are tried in a fixed order and the first match wins.
func (e *Engine) resolveExtended(from, to *Member) (Label, bool) {
	tiers := [...]func(from, to *Member) (Label, bool){
		e.grandRelative,
		e.greatGrandRelative,
		e.auntUncleOrNiece,
		e.firstCousin,
		e.greatAuntUncle,
		e.secondCousin,
	}
	for _, tier := range tiers {
		if l, ok := tier(from, to); ok {
			return l, true
		}
	}
	return LabelUnknown, false
}

// grandRelative matches to as a parent's parent or a child's child.
func (e *Engine) grandRelative(from, to *Member) (Label, bool) {
	for _, p := range e.idx.parents(from) {
		if p.hasParent(to.ID) {
			return grandparentTerms.pick(to), true
		}
	}
	for _, c := range e.idx.children(from) {
		if c.hasChild(to.ID) {
			return grandchildTerms.pick(to), true
		}
	}
	return LabelUnknown, false
}

// greatGrandRelative goes one generation past grandRelative in each direction.
func (e *Engine) greatGrandRelative(from, to *Member) (Label, bool) {
	for _, p := range e.idx.parents(from) {
		for _, g := range e.idx.parents(p) {
			if g.hasParent(to.ID) {
				return greatGrandparentTerms.pick(to), true
			}
		}
	}
	for _, c := range e.idx.children(from) {
		for _, gc := range e.idx.children(c) {
			if gc.hasChild(to.ID) {
				return greatGrandchildTerms.pick(to), true
			}
		}
	}
	return LabelUnknown, false
}

// siblingsOf yields the other children of p, skipping self.
func (e *Engine) siblingsOf(p, self *Member) []*Member {
	var out []*Member
	for _, s := range e.idx.children(p) {
		if s.ID != self.ID {
			out = append(out, s)
		}
	}
	return out
}

// auntUncleOrNiece covers a parent's sibling, a sibling's child and a
// sibling's grandchild. Aunt and uncle seniority is measured against the
// parent they are a sibling of.
func (e *Engine) auntUncleOrNiece(from, to *Member) (Label, bool) {
	for _, p := range e.idx.parents(from) {
		for _, g := range e.idx.parents(p) {
			if g.hasChild(to.ID) && to.ID != p.ID {
				return auntUncleTerms.pick(to, to.elderThan(p)), true
			}
		}
	}

	for _, p := range e.idx.parents(from) {
		for _, s := range e.siblingsOf(p, from) {
			if s.hasChild(to.ID) {
				return nephewNieceTerms.pick(to), true
			}
		}
	}

	for _, p := range e.idx.parents(from) {
		for _, s := range e.siblingsOf(p, from) {
			for _, n := range e.idx.children(s) {
				if n.hasChild(to.ID) {
					return nephewChildTerms.pick(to), true
				}
			}
		}
	}
	return LabelUnknown, false
}

// firstCousin matches a child of any sibling of from's parents.
func (e *Engine) firstCousin(from, to *Member) (Label, bool) {
	for _, p := range e.idx.parents(from) {
		for _, g := range e.idx.parents(p) {
			for _, au := range e.siblingsOf(g, p) {
				if au.hasChild(to.ID) {
					return cousinTerms.pick(to), true
				}
			}
		}
	}
	return LabelUnknown, false
}

// greatAuntUncle matches a sibling of one of from's grandparents.
func (e *Engine) greatAuntUncle(from, to *Member) (Label, bool) {
	for _, p := range e.idx.parents(from) {
		for _, g := range e.idx.parents(p) {
			for _, gg := range e.idx.parents(g) {
				if gg.hasChild(to.ID) && to.ID != g.ID {
					return greatAuntUncleTerms.pick(to), true
				}
			}
		}
	}
	return LabelUnknown, false
}

// secondCousin descends from the siblings of from's grandparents. A child of
// such a great-aunt or great-uncle is a parent's cousin; a grandchild is a
// second cousin. Failing both, a first cousin's child is matched under the
// same grandparent.
func (e *Engine) secondCousin(from, to *Member) (Label, bool) {
	for _, p := range e.idx.parents(from) {
		for _, g := range e.idx.parents(p) {
			for _, gg := range e.idx.parents(g) {
				for _, gau := range e.siblingsOf(gg, g) {
					if gau.hasChild(to.ID) {
						return parentCousinTerms.pick(to), true
					}
					for _, c := range e.idx.children(gau) {
						if c.hasChild(to.ID) {
							return secondCousinTerms.pick(to), true
						}
					}
				}
			}

			for _, au := range e.siblingsOf(g, p) {
				for _, c := range e.idx.children(au) {
					if c.hasChild(to.ID) {
						return cousinChildTerms.pick(to), true
					}
				}
			}
		}
	}
	return LabelUnknown, false
}
