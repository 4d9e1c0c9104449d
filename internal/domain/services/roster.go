package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
)

// RosterService edits the members of one family tree and the links between them.
type RosterService struct {
	relationalDB ports.RelationalDB
}

// NewRosterService creates a new RosterService.
func NewRosterService(relationalDB ports.RelationalDB) *RosterService {
	return &RosterService{
		relationalDB: relationalDB,
	}
}

// Add validates and stores a new member. An empty id is replaced with a fresh
// UUID. The spouse, parents and children named by the draft are updated to
// point back at the new member.
func (s *RosterService) Add(ctx context.Context, draft *entities.FamilyMember) (*entities.FamilyMember, error) {
	member := draft.Clone()
	if err := validateMember(&member); err != nil {
		return nil, err
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.SpouseID == member.ID || member.HasParent(member.ID) || member.HasChild(member.ID) {
		return nil, fmt.Errorf("%w: %s", ErrSelfLink, member.ID)
	}

	existing, err := s.relationalDB.FindMemberByID(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing member: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, member.ID)
	}

	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	related, err := s.relationalDB.FindMembersByIDs(ctx, linkedIDs(&member))
	if err != nil {
		return nil, fmt.Errorf("loading linked members: %w", err)
	}

	batch := []*entities.FamilyMember{&member}
	for _, rel := range related {
		if backLink(rel, &member) {
			rel.UpdatedAt = now
			batch = append(batch, rel)
		}
	}

	if err := s.relationalDB.SaveMembers(ctx, batch); err != nil {
		return nil, fmt.Errorf("saving member: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, entities.AuditMemberAdded, member.ID, map[string]any{
		"name":       member.Name,
		"back_links": len(batch) - 1,
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return &member, nil
}

// linkedIDs returns every id the member points at.
func linkedIDs(m *entities.FamilyMember) []string {
	ids := make([]string, 0, 1+len(m.ParentIDs)+len(m.ChildrenIDs))
	if m.SpouseID != "" {
		ids = append(ids, m.SpouseID)
	}
	ids = append(ids, m.ParentIDs...)
	ids = append(ids, m.ChildrenIDs...)
	return ids
}

// backLink makes rel point back at m wherever m points at rel.
// It reports whether rel changed.
func backLink(rel, m *entities.FamilyMember) bool {
	changed := false
	if m.SpouseID == rel.ID && rel.SpouseID != m.ID {
		rel.SpouseID = m.ID
		changed = true
	}
	if m.HasParent(rel.ID) && rel.AddChild(m.ID) {
		changed = true
	}
	if m.HasChild(rel.ID) && rel.AddParent(m.ID) {
		changed = true
	}
	return changed
}

// Update replaces a stored member with the given record. Links are taken
// verbatim; other members are not touched.
func (s *RosterService) Update(ctx context.Context, member *entities.FamilyMember) (*entities.FamilyMember, error) {
	updated := member.Clone()
	if err := validateMember(&updated); err != nil {
		return nil, err
	}

	existing, err := s.relationalDB.FindMemberByID(ctx, updated.ID)
	if err != nil {
		return nil, fmt.Errorf("finding member: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, updated.ID)
	}

	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.relationalDB.SaveMember(ctx, &updated); err != nil {
		return nil, fmt.Errorf("saving member: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, entities.AuditMemberUpdated, updated.ID, map[string]any{
		"name": updated.Name,
	}); err != nil {
		return nil, fmt.Errorf("logging action: %w", err)
	}

	return &updated, nil
}

// Delete removes a member and scrubs its id from every other member's links.
func (s *RosterService) Delete(ctx context.Context, id string) error {
	existing, err := s.relationalDB.FindMemberByID(ctx, id)
	if err != nil {
		return fmt.Errorf("finding member: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}

	roster, err := s.relationalDB.Roster(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	var scrubbed []*entities.FamilyMember
	now := time.Now()
	for i := range roster {
		m := &roster[i]
		if m.ID == id {
			continue
		}
		changed := m.RemoveParent(id)
		changed = m.RemoveChild(id) || changed
		if m.SpouseID == id {
			m.SpouseID = ""
			changed = true
		}
		if changed {
			m.UpdatedAt = now
			scrubbed = append(scrubbed, m)
		}
	}

	if len(scrubbed) > 0 {
		if err := s.relationalDB.SaveMembers(ctx, scrubbed); err != nil {
			return fmt.Errorf("removing references: %w", err)
		}
	}

	if err := s.relationalDB.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	if err := s.relationalDB.LogAction(ctx, entities.AuditMemberDeleted, id, map[string]any{
		"name":     existing.Name,
		"scrubbed": len(scrubbed),
	}); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}

	return nil
}

// Link adds one edge from memberID to targetID. With bidirectional set the
// inverse edge is added on the target as well.
func (s *RosterService) Link(ctx context.Context, memberID string, kind entities.LinkKind, targetID string, bidirectional bool) error {
	return s.editLink(ctx, memberID, kind, targetID, bidirectional, true)
}

// Unlink removes one edge from memberID to targetID. With bidirectional set
// the inverse edge is removed from the target as well.
func (s *RosterService) Unlink(ctx context.Context, memberID string, kind entities.LinkKind, targetID string, bidirectional bool) error {
	return s.editLink(ctx, memberID, kind, targetID, bidirectional, false)
}

func (s *RosterService) editLink(
	ctx context.Context,
	memberID string,
	kind entities.LinkKind,
	targetID string,
	bidirectional bool,
	add bool,
) error {
	if _, err := entities.ParseLinkKind(string(kind)); err != nil {
		return err
	}
	if memberID == targetID {
		return fmt.Errorf("%w: %s", ErrSelfLink, memberID)
	}

	found, err := s.relationalDB.FindMembersByIDs(ctx, []string{memberID, targetID})
	if err != nil {
		return fmt.Errorf("finding members: %w", err)
	}
	var member, target *entities.FamilyMember
	for _, m := range found {
		switch m.ID {
		case memberID:
			member = m
		case targetID:
			target = m
		}
	}
	if member == nil {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	if target == nil {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, targetID)
	}

	now := time.Now()
	var changed []*entities.FamilyMember
	if applyLink(member, kind, targetID, add) {
		member.UpdatedAt = now
		changed = append(changed, member)
	}
	if bidirectional && applyLink(target, kind.Inverse(), memberID, add) {
		target.UpdatedAt = now
		changed = append(changed, target)
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.relationalDB.SaveMembers(ctx, changed); err != nil {
		return fmt.Errorf("saving link: %w", err)
	}

	action := entities.AuditLinkAdded
	if !add {
		action = entities.AuditLinkRemoved
	}
	if err := s.relationalDB.LogAction(ctx, action, memberID, map[string]any{
		"kind":          string(kind),
		"target":        targetID,
		"bidirectional": bidirectional,
	}); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}

	return nil
}

// applyLink adds or removes one edge on m and reports whether m changed.
func applyLink(m *entities.FamilyMember, kind entities.LinkKind, targetID string, add bool) bool {
	switch kind {
	case entities.LinkParent:
		if add {
			return m.AddParent(targetID)
		}
		return m.RemoveParent(targetID)
	case entities.LinkChild:
		if add {
			return m.AddChild(targetID)
		}
		return m.RemoveChild(targetID)
	case entities.LinkSpouse:
		if add {
			if m.SpouseID == targetID {
				return false
			}
			m.SpouseID = targetID
			return true
		}
		if m.SpouseID != targetID {
			return false
		}
		m.SpouseID = ""
		return true
	}
	return false
}

// Resolve finds a member by id, falling back to a case-insensitive name match.
func (s *RosterService) Resolve(ctx context.Context, ref string) (*entities.FamilyMember, error) {
	member, err := s.relationalDB.FindMemberByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("finding member by id: %w", err)
	}
	if member != nil {
		return member, nil
	}

	member, err = s.relationalDB.FindMemberByName(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("finding member by name: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, ref)
	}
	return member, nil
}

// Get finds a member by id. Returns nil if not found.
func (s *RosterService) Get(ctx context.Context, id string) (*entities.FamilyMember, error) {
	return s.relationalDB.FindMemberByID(ctx, id)
}

// List returns members in roster order with pagination.
func (s *RosterService) List(ctx context.Context, limit, offset int) ([]*entities.FamilyMember, error) {
	return s.relationalDB.ListMembers(ctx, limit, offset)
}

// Search searches members by name pattern.
func (s *RosterService) Search(ctx context.Context, query string, limit int) ([]*entities.FamilyMember, error) {
	return s.relationalDB.SearchMembers(ctx, query, limit)
}

// Count returns the number of members in the tree.
func (s *RosterService) Count(ctx context.Context) (int, error) {
	return s.relationalDB.CountMembers(ctx)
}

// Revision returns the store's change counter.
func (s *RosterService) Revision(ctx context.Context) (int64, error) {
	return s.relationalDB.Revision(ctx)
}

// History returns the audit trail of one member, newest first.
func (s *RosterService) History(ctx context.Context, id string) ([]entities.AuditEntry, error) {
	return s.relationalDB.FindAuditLog(ctx, id)
}

// Snapshot returns the whole tree, family name included.
func (s *RosterService) Snapshot(ctx context.Context) (*entities.FamilyTree, error) {
	name, err := s.relationalDB.FamilyName(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading family name: %w", err)
	}
	members, err := s.relationalDB.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	if members == nil {
		members = []entities.FamilyMember{}
	}
	return &entities.FamilyTree{FamilyName: name, Members: members}, nil
}
