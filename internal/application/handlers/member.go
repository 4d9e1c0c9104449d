package handlers

import (
	"context"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

// MemberHandler handles member operations at the application layer.
type MemberHandler struct {
	rosterService *services.RosterService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(rosterService *services.RosterService) *MemberHandler {
	return &MemberHandler{
		rosterService: rosterService,
	}
}

// MemberListResult contains the result of listing members.
type MemberListResult struct {
	Members []*entities.FamilyMember `json:"members"`
	Total   int                      `json:"total"`
}

// MemberDetail is one member with its audit trail.
type MemberDetail struct {
	Member  *entities.FamilyMember `json:"member"`
	History []entities.AuditEntry  `json:"history,omitempty"`
}

// MemberEdit lists the fields to change on a member. Nil fields are kept.
type MemberEdit struct {
	Name            *string
	Gender          *string
	BirthDate       *string
	DeathDate       *string
	Biography       *string
	ProfilePicture  *string
	Phone           *string
	Email           *string
	SocialMediaLink *string
}

// HandleList returns members in roster order with pagination.
func (h *MemberHandler) HandleList(ctx context.Context, limit, offset int) (*MemberListResult, error) {
	members, err := h.rosterService.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	count, err := h.rosterService.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &MemberListResult{
		Members: members,
		Total:   count,
	}, nil
}

// HandleSearch searches members by name pattern.
func (h *MemberHandler) HandleSearch(ctx context.Context, query string, limit int) (*MemberListResult, error) {
	members, err := h.rosterService.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	return &MemberListResult{
		Members: members,
		Total:   len(members),
	}, nil
}

// HandleShow returns a member, found by id or name, with its history.
func (h *MemberHandler) HandleShow(ctx context.Context, ref string) (*MemberDetail, error) {
	member, err := h.rosterService.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	history, err := h.rosterService.History(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	return &MemberDetail{Member: member, History: history}, nil
}

// HandleAdd adds a member and links its relatives back to it.
func (h *MemberHandler) HandleAdd(ctx context.Context, draft *entities.FamilyMember) (*entities.FamilyMember, error) {
	draft.Gender = normalizeGender(draft.Gender)
	return h.rosterService.Add(ctx, draft)
}

// HandleEdit applies edit to the member found by ref.
func (h *MemberHandler) HandleEdit(ctx context.Context, ref string, edit MemberEdit) (*entities.FamilyMember, error) {
	member, err := h.rosterService.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	setIf(&member.Name, edit.Name)
	setIf(&member.BirthDate, edit.BirthDate)
	setIf(&member.DeathDate, edit.DeathDate)
	setIf(&member.Biography, edit.Biography)
	setIf(&member.ProfilePicture, edit.ProfilePicture)
	setIf(&member.Phone, edit.Phone)
	setIf(&member.Email, edit.Email)
	setIf(&member.SocialMediaLink, edit.SocialMediaLink)
	if edit.Gender != nil {
		member.Gender = normalizeGender(entities.Gender(*edit.Gender))
	}

	return h.rosterService.Update(ctx, member)
}

// HandleDelete removes the member found by ref and returns it.
func (h *MemberHandler) HandleDelete(ctx context.Context, ref string) (*entities.FamilyMember, error) {
	member, err := h.rosterService.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := h.rosterService.Delete(ctx, member.ID); err != nil {
		return nil, err
	}
	return member, nil
}

// HandleExport returns the whole roster with its family name.
func (h *MemberHandler) HandleExport(ctx context.Context) (*entities.FamilyTree, error) {
	return h.rosterService.Snapshot(ctx)
}

// HandleCount returns the number of members in the tree.
func (h *MemberHandler) HandleCount(ctx context.Context) (int, error) {
	return h.rosterService.Count(ctx)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// normalizeGender turns shorthand like "f" into its canonical spelling and
// leaves anything unrecognized for validation to reject.
func normalizeGender(g entities.Gender) entities.Gender {
	if parsed := entities.ParseGender(string(g)); parsed != entities.GenderUnspecified {
		return parsed
	}
	return g
}
