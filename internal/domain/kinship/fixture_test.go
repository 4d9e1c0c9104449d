package kinship

import (
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

// rosterBuilder assembles member records with consistent back-links.
type rosterBuilder struct {
	members []entities.FamilyMember
	pos     map[string]int
}

func newRoster() *rosterBuilder {
	return &rosterBuilder{pos: make(map[string]int)}
}

func (b *rosterBuilder) add(id string, g entities.Gender, birth string) *rosterBuilder {
	b.pos[id] = len(b.members)
	b.members = append(b.members, entities.FamilyMember{ID: id, Name: id, Gender: g, BirthDate: birth})
	return b
}

func (b *rosterBuilder) get(id string) *entities.FamilyMember {
	return &b.members[b.pos[id]]
}

// parent links p as a parent of each child, in both directions.
func (b *rosterBuilder) parent(p string, children ...string) *rosterBuilder {
	for _, c := range children {
		b.get(p).AddChild(c)
		b.get(c).AddParent(p)
	}
	return b
}

func (b *rosterBuilder) marry(a, c string) *rosterBuilder {
	b.get(a).SpouseID = c
	b.get(c).SpouseID = a
	return b
}

func (b *rosterBuilder) build() []entities.FamilyMember {
	return b.members
}

const (
	male   = entities.GenderMale
	female = entities.GenderFemale
	none   = entities.GenderUnspecified
)

// familyFixture is a five-generation tree seen mostly from "x".
//
//	gg1 ─┬─ g1 ─┬─ p1 ═ p2 ─┬─ x ═ w ── k1 ── gk ── ggk
//	     │      │           └─ sib ── nep ── gn
//	     │      ├─ p1 ── half
//	     │      ├─ au1 ── cous1 ── cc1
//	     │      └─ au2
//	     └─ ga1 ── pc1 ── sc1
//	wf ═ sm;  wf ─┬─ w, wb, wsib
func familyFixture() []entities.FamilyMember {
	return newRoster().
		add("gg1", male, "1900-01-01").
		add("g1", male, "1930-01-01").
		add("ga1", female, "1932-01-01").
		add("pc1", none, "").
		add("sc1", female, "").
		add("p1", male, "1960-01-01").
		add("p2", female, "1962-01-01").
		add("au1", female, "1955-01-01").
		add("au2", male, "1965-01-01").
		add("cous1", male, "").
		add("cc1", female, "").
		add("x", male, "1985-01-01").
		add("sib", female, "1980-01-01").
		add("half", male, "").
		add("nep", male, "").
		add("gn", female, "").
		add("w", female, "1992-01-01").
		add("wf", male, "").
		add("sm", female, "").
		add("wb", male, "1988-01-01").
		add("wsib", none, "1990-01-01").
		add("k1", female, "").
		add("gk", male, "").
		add("ggk", none, "").
		parent("gg1", "g1", "ga1").
		parent("ga1", "pc1").
		parent("pc1", "sc1").
		parent("g1", "p1", "au1", "au2").
		parent("au1", "cous1").
		parent("cous1", "cc1").
		parent("p1", "x", "sib", "half").
		parent("p2", "x", "sib").
		parent("sib", "nep").
		parent("nep", "gn").
		parent("wf", "w", "wb", "wsib").
		parent("x", "k1").
		parent("w", "k1").
		parent("k1", "gk").
		parent("gk", "ggk").
		marry("p1", "p2").
		marry("x", "w").
		marry("wf", "sm").
		build()
}
