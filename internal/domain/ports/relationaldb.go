package ports

import (
	"context"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

// RelationalDB defines the persistence port for one family tree: the member
// roster, tree metadata and the audit log.
//
// Member records are stored exactly as given. Implementations must not add,
// drop or reorder parent and child ids, and must not reject references to
// members that do not exist.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Member operations

	// SaveMember inserts or replaces a member.
	SaveMember(ctx context.Context, member *entities.FamilyMember) error

	// SaveMembers inserts or replaces several members in one transaction.
	SaveMembers(ctx context.Context, members []*entities.FamilyMember) error

	// FindMemberByID finds a member by id. Returns nil if not found.
	FindMemberByID(ctx context.Context, id string) (*entities.FamilyMember, error)

	// FindMembersByIDs finds the members with the given ids in roster order.
	// Unknown ids are skipped.
	FindMembersByIDs(ctx context.Context, ids []string) ([]*entities.FamilyMember, error)

	// FindMemberByName finds the first member whose name matches (case-insensitive).
	// Returns nil if not found.
	FindMemberByName(ctx context.Context, name string) (*entities.FamilyMember, error)

	// ListMembers lists members in roster order with pagination.
	ListMembers(ctx context.Context, limit, offset int) ([]*entities.FamilyMember, error)

	// SearchMembers searches members by name pattern.
	SearchMembers(ctx context.Context, query string, limit int) ([]*entities.FamilyMember, error)

	// DeleteMember deletes a member by id.
	DeleteMember(ctx context.Context, id string) error

	// CountMembers returns the number of members.
	CountMembers(ctx context.Context) (int, error)

	// Roster operations

	// Roster returns every member in roster order.
	Roster(ctx context.Context) ([]entities.FamilyMember, error)

	// ReplaceRoster swaps the whole roster and family name in one transaction.
	ReplaceRoster(ctx context.Context, tree *entities.FamilyTree) error

	// FamilyName returns the stored family name, or "" when unset.
	FamilyName(ctx context.Context) (string, error)

	// SetFamilyName stores the family name.
	SetFamilyName(ctx context.Context, name string) error

	// Revision returns a counter that changes whenever the roster changes.
	Revision(ctx context.Context) (int64, error)

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, memberID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific member.
	FindAuditLog(ctx context.Context, memberID string) ([]entities.AuditEntry, error)

	// FindAuditLogByAction finds audit log entries by action type.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
