package handlers

import (
	"context"
	"errors"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

// KinshipHandler answers kinship questions about the members of a tree.
type KinshipHandler struct {
	rosterService  *services.RosterService
	kinshipService *services.KinshipService
}

// NewKinshipHandler creates a new KinshipHandler.
func NewKinshipHandler(rosterService *services.RosterService, kinshipService *services.KinshipService) *KinshipHandler {
	return &KinshipHandler{
		rosterService:  rosterService,
		kinshipService: kinshipService,
	}
}

// RelationResult is a resolved relation with the members it concerns.
// FromMember and ToMember are nil when the reference matched no member.
type RelationResult struct {
	services.Relation
	FromMember *entities.FamilyMember `json:"-"`
	ToMember   *entities.FamilyMember `json:"-"`
}

// VocabEntry is one label with its display text.
type VocabEntry struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// HandleRelation resolves what toRef is to fromRef. References are ids or
// names; a reference that matches no member resolves to the unknown label.
func (h *KinshipHandler) HandleRelation(ctx context.Context, fromRef, toRef string) (*RelationResult, error) {
	fromID, fromMember, err := h.lookup(ctx, fromRef)
	if err != nil {
		return nil, err
	}
	toID, toMember, err := h.lookup(ctx, toRef)
	if err != nil {
		return nil, err
	}

	rel, err := h.kinshipService.Relationship(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}

	return &RelationResult{
		Relation:   *rel,
		FromMember: fromMember,
		ToMember:   toMember,
	}, nil
}

// HandleLabels labels every member relative to the focus member.
func (h *KinshipHandler) HandleLabels(ctx context.Context, focusRef string) ([]services.NodeLabel, error) {
	focus, err := h.rosterService.Resolve(ctx, focusRef)
	if err != nil {
		return nil, err
	}
	return h.kinshipService.Labels(ctx, focus.ID)
}

// ListVocabulary lists every label with its text in the vocabulary best
// matching locale.
func ListVocabulary(locale string) (*kinship.Vocabulary, []VocabEntry) {
	vocab := kinship.VocabularyFor(locale)
	labels := kinship.AllLabels()
	entries := make([]VocabEntry, 0, len(labels))
	for _, l := range labels {
		entries = append(entries, VocabEntry{Key: l.String(), Text: vocab.Text(l)})
	}
	return vocab, entries
}

// lookup maps a reference to a member id. Unknown references are passed
// through unchanged.
func (h *KinshipHandler) lookup(ctx context.Context, ref string) (string, *entities.FamilyMember, error) {
	member, err := h.rosterService.Resolve(ctx, ref)
	if errors.Is(err, services.ErrMemberNotFound) {
		return ref, nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return member.ID, member, nil
}
