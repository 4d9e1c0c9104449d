package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

// RelationalDB is an in-memory implementation of ports.RelationalDB.
// Members are kept in insertion order, like the SQLite roster.
type RelationalDB struct {
	mu      sync.Mutex
	Members []*entities.FamilyMember
	Family  string
	Rev     int64
	Audit   []entities.AuditEntry
	Err     error

	// RosterCalls counts Roster invocations.
	RosterCalls int
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB(members ...entities.FamilyMember) *RelationalDB {
	m := &RelationalDB{}
	for i := range members {
		c := members[i].Clone()
		m.Members = append(m.Members, &c)
	}
	return m
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

func (m *RelationalDB) indexOf(id string) int {
	for i, mem := range m.Members {
		if mem.ID == id {
			return i
		}
	}
	return -1
}

func (m *RelationalDB) upsert(member *entities.FamilyMember) {
	c := member.Clone()
	if i := m.indexOf(member.ID); i >= 0 {
		m.Members[i] = &c
		return
	}
	m.Members = append(m.Members, &c)
}

// SaveMember inserts or replaces a member.
func (m *RelationalDB) SaveMember(_ context.Context, member *entities.FamilyMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.upsert(member)
	m.Rev++
	return nil
}

// SaveMembers inserts or replaces several members.
func (m *RelationalDB) SaveMembers(_ context.Context, members []*entities.FamilyMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, mem := range members {
		m.upsert(mem)
	}
	m.Rev++
	return nil
}

// FindMemberByID finds a member by id.
func (m *RelationalDB) FindMemberByID(_ context.Context, id string) (*entities.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if i := m.indexOf(id); i >= 0 {
		c := m.Members[i].Clone()
		return &c, nil
	}
	return nil, nil
}

// FindMembersByIDs finds the members with the given ids in roster order.
func (m *RelationalDB) FindMembersByIDs(_ context.Context, ids []string) ([]*entities.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	result := make([]*entities.FamilyMember, 0, len(ids))
	for _, mem := range m.Members {
		if want[mem.ID] {
			c := mem.Clone()
			result = append(result, &c)
		}
	}
	return result, nil
}

// FindMemberByName finds the first member whose name matches.
func (m *RelationalDB) FindMemberByName(_ context.Context, name string) (*entities.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	norm := entities.NormalizeName(name)
	for _, mem := range m.Members {
		if entities.NormalizeName(mem.Name) == norm {
			c := mem.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// ListMembers lists members with pagination.
func (m *RelationalDB) ListMembers(_ context.Context, limit, offset int) ([]*entities.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.FamilyMember, 0, limit)
	for i := offset; i < len(m.Members) && len(result) < limit; i++ {
		c := m.Members[i].Clone()
		result = append(result, &c)
	}
	return result, nil
}

// SearchMembers searches members by name substring.
func (m *RelationalDB) SearchMembers(_ context.Context, query string, limit int) ([]*entities.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	q := entities.NormalizeName(query)
	var result []*entities.FamilyMember
	for _, mem := range m.Members {
		if len(result) >= limit {
			break
		}
		if strings.Contains(entities.NormalizeName(mem.Name), q) {
			c := mem.Clone()
			result = append(result, &c)
		}
	}
	return result, nil
}

// DeleteMember deletes a member by id.
func (m *RelationalDB) DeleteMember(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("member not found: %s", id)
	}
	m.Members = append(m.Members[:i], m.Members[i+1:]...)
	m.Rev++
	return nil
}

// CountMembers returns the number of members.
func (m *RelationalDB) CountMembers(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Members), m.Err
}

// Roster returns every member in order.
func (m *RelationalDB) Roster(_ context.Context) ([]entities.FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.FamilyMember, len(m.Members))
	for i, mem := range m.Members {
		result[i] = mem.Clone()
	}
	return result, nil
}

// ReplaceRoster swaps the whole roster.
func (m *RelationalDB) ReplaceRoster(_ context.Context, tree *entities.FamilyTree) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Members = nil
	for i := range tree.Members {
		m.upsert(&tree.Members[i])
	}
	m.Family = tree.FamilyName
	m.Rev++
	return nil
}

// FamilyName returns the stored family name.
func (m *RelationalDB) FamilyName(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Family, m.Err
}

// SetFamilyName stores the family name.
func (m *RelationalDB) SetFamilyName(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Family = name
	m.Rev++
	return nil
}

// Revision returns the change counter.
func (m *RelationalDB) Revision(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Rev, m.Err
}

// Bump simulates an out-of-band roster change.
func (m *RelationalDB) Bump() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rev++
}

// LogAction appends to the in-memory audit log.
func (m *RelationalDB) LogAction(_ context.Context, action string, memberID string, details map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        int64(len(m.Audit) + 1),
		Action:    action,
		MemberID:  memberID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog finds audit log entries for a member, newest first.
func (m *RelationalDB) FindAuditLog(_ context.Context, memberID string) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if m.Audit[i].MemberID == memberID {
			result = append(result, m.Audit[i])
		}
	}
	return result, nil
}

// FindAuditLogByAction finds audit log entries by action, newest first.
func (m *RelationalDB) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0 && len(result) < limit; i-- {
		if m.Audit[i].Action == action {
			result = append(result, m.Audit[i])
		}
	}
	return result, nil
}

// Actions returns the recorded audit actions in order.
func (m *RelationalDB) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Audit))
	for i, e := range m.Audit {
		out[i] = e.Action
	}
	return out
}
