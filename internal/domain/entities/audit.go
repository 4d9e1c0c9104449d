package entities

import "time"

// Audit actions recorded by the roster service.
const (
	AuditMemberAdded   = "member_added"
	AuditMemberUpdated = "member_updated"
	AuditMemberDeleted = "member_deleted"
	AuditLinkAdded     = "link_added"
	AuditLinkRemoved   = "link_removed"
	AuditRosterImport  = "roster_imported"
)

// AuditEntry represents a logged action in the system.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	MemberID  string         `json:"member_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
