package handlers

import (
	"context"
	"fmt"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

// LinkHandler edits parent, child and spouse links between members.
type LinkHandler struct {
	rosterService *services.RosterService
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(rosterService *services.RosterService) *LinkHandler {
	return &LinkHandler{
		rosterService: rosterService,
	}
}

// LinkResult names the two members an edit touched.
type LinkResult struct {
	Member        *entities.FamilyMember
	Kind          entities.LinkKind
	Target        *entities.FamilyMember
	Bidirectional bool
}

// HandleLink adds a link of the given kind from memberRef to targetRef.
// References are ids or names.
func (h *LinkHandler) HandleLink(ctx context.Context, memberRef, kind, targetRef string, bidirectional bool) (*LinkResult, error) {
	result, err := h.resolve(ctx, memberRef, kind, targetRef, bidirectional)
	if err != nil {
		return nil, err
	}
	if err := h.rosterService.Link(ctx, result.Member.ID, result.Kind, result.Target.ID, bidirectional); err != nil {
		return nil, err
	}
	return result, nil
}

// HandleUnlink removes a link of the given kind from memberRef to targetRef.
func (h *LinkHandler) HandleUnlink(ctx context.Context, memberRef, kind, targetRef string, bidirectional bool) (*LinkResult, error) {
	result, err := h.resolve(ctx, memberRef, kind, targetRef, bidirectional)
	if err != nil {
		return nil, err
	}
	if err := h.rosterService.Unlink(ctx, result.Member.ID, result.Kind, result.Target.ID, bidirectional); err != nil {
		return nil, err
	}
	return result, nil
}

func (h *LinkHandler) resolve(ctx context.Context, memberRef, kind, targetRef string, bidirectional bool) (*LinkResult, error) {
	lk, err := entities.ParseLinkKind(kind)
	if err != nil {
		return nil, err
	}

	member, err := h.rosterService.Resolve(ctx, memberRef)
	if err != nil {
		return nil, fmt.Errorf("resolving member: %w", err)
	}
	target, err := h.rosterService.Resolve(ctx, targetRef)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}

	return &LinkResult{
		Member:        member,
		Kind:          lk,
		Target:        target,
		Bidirectional: bidirectional,
	}, nil
}
