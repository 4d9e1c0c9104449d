// Package kinship derives the kinship term one family member uses for
// another from parent, child and spouse links.
//
// An Engine captures a roster snapshot at construction and answers queries
// from it without further allocation of shared state, so one Engine may be
// queried from many goroutines. Build a new Engine after the roster changes.
package kinship

import (
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

// MaxHops is the deepest parent/child traversal any resolver performs.
const MaxHops = 4

// Tier identifies which resolution stage produced a result.
type Tier string

const (
	TierSelf     Tier = "self"
	TierUnknown  Tier = "unknown"
	TierDirect   Tier = "direct"
	TierExtended Tier = "extended"
	TierFallback Tier = "fallback"
)

// Tiers lists every tier in resolution order.
var Tiers = []Tier{TierSelf, TierUnknown, TierDirect, TierExtended, TierFallback}

// Result is the outcome of one query.
type Result struct {
	Label Label
	Tier  Tier
}

// Engine resolves kinship labels over an immutable roster snapshot.
type Engine struct {
	view  []Member
	idx   index
	vocab *Vocabulary
}

// Option configures an Engine.
type Option func(*Engine)

// WithVocabulary sets the vocabulary used by Relationship. Nil is ignored.
func WithVocabulary(v *Vocabulary) Option {
	return func(e *Engine) {
		if v != nil {
			e.vocab = v
		}
	}
}

// New builds an engine from full member records.
func New(members []entities.FamilyMember, opts ...Option) *Engine {
	return newEngine(Project(members), opts)
}

// NewFromView builds an engine from an already projected roster. The slice is
// copied so later changes by the caller are not observed.
func NewFromView(view []Member, opts ...Option) *Engine {
	cp := make([]Member, len(view))
	copy(cp, view)
	return newEngine(cp, opts)
}

func newEngine(view []Member, opts []Option) *Engine {
	e := &Engine{
		view:  view,
		idx:   newIndex(view),
		vocab: Nepali,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Len returns the number of members in the snapshot.
func (e *Engine) Len() int {
	return len(e.view)
}

// Vocabulary returns the vocabulary Relationship renders with.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// Resolve classifies to as seen from from. It never fails: an id missing
// from the roster gives LabelUnknown and an unmatched pair gives
// LabelFamilyMember.
func (e *Engine) Resolve(fromID, toID string) Result {
	if fromID == toID {
		return Result{Label: LabelSelf, Tier: TierSelf}
	}

	from, okFrom := e.idx[fromID]
	to, okTo := e.idx[toID]
	if !okFrom || !okTo {
		return Result{Label: LabelUnknown, Tier: TierUnknown}
	}

	if l, ok := e.resolveDirect(from, to); ok {
		return Result{Label: l, Tier: TierDirect}
	}
	if l, ok := e.resolveExtended(from, to); ok {
		return Result{Label: l, Tier: TierExtended}
	}
	return Result{Label: LabelFamilyMember, Tier: TierFallback}
}

// Label is Resolve without the tier.
func (e *Engine) Label(fromID, toID string) Label {
	return e.Resolve(fromID, toID).Label
}

// Relationship returns the display text of the label for the pair.
func (e *Engine) Relationship(fromID, toID string) string {
	return e.vocab.Text(e.Label(fromID, toID))
}
