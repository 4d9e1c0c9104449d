// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

const (
	metaFamilyName = "family_name"
	metaRevision   = "revision"
)

// memberColumns is the column list shared by every member query.
const memberColumns = `id, name, gender, birth_date, death_date, biography, profile_picture,
	phone, email, social_media_link, spouse_id, pos_x, pos_y, created_at, updated_at`

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// PRAGMAs are per connection and every connection to ":memory:" is a
	// separate database, so keep a single connection.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
//
// Links are deliberately not foreign keys: rosters may reference members
// that are absent, and such references must survive a round trip.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Members in roster order
	CREATE TABLE IF NOT EXISTS members (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT '',
		birth_date TEXT NOT NULL DEFAULT '',
		death_date TEXT NOT NULL DEFAULT '',
		biography TEXT NOT NULL DEFAULT '',
		profile_picture TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		social_media_link TEXT NOT NULL DEFAULT '',
		spouse_id TEXT NOT NULL DEFAULT '',
		pos_x REAL NOT NULL DEFAULT 0,
		pos_y REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_members_normalized ON members(normalized_name);

	-- Ordered parent and child id lists of each member
	CREATE TABLE IF NOT EXISTS member_links (
		member_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		target_id TEXT NOT NULL,
		PRIMARY KEY (member_id, kind, ordinal)
	);
	CREATE INDEX IF NOT EXISTS idx_member_links_target ON member_links(target_id);

	-- Tree metadata (family name, revision counter)
	CREATE TABLE IF NOT EXISTS tree_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		member_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_member ON audit_log(member_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// mutate runs fn in a transaction and bumps the roster revision with it.
func (r *Repository) mutate(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	bump := `
		INSERT INTO tree_meta (key, value) VALUES (?, '1')
		ON CONFLICT(key) DO UPDATE SET value = CAST(value AS INTEGER) + 1
	`
	if _, err := tx.ExecContext(ctx, bump, metaRevision); err != nil {
		return fmt.Errorf("bumping revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveMember inserts or replaces a member.
func (r *Repository) SaveMember(ctx context.Context, member *entities.FamilyMember) error {
	return r.mutate(ctx, func(tx *sql.Tx) error {
		return saveMember(ctx, tx, member)
	})
}

// SaveMembers inserts or replaces several members in one transaction.
func (r *Repository) SaveMembers(ctx context.Context, members []*entities.FamilyMember) error {
	if len(members) == 0 {
		return nil
	}
	return r.mutate(ctx, func(tx *sql.Tx) error {
		for _, m := range members {
			if err := saveMember(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// saveMember upserts the member row, keeping its roster position, and
// rewrites its link lists.
func saveMember(ctx context.Context, tx *sql.Tx, m *entities.FamilyMember) error {
	now := timeNow()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `
		INSERT INTO members (id, name, normalized_name, gender, birth_date, death_date, biography,
			profile_picture, phone, email, social_media_link, spouse_id, pos_x, pos_y, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name,
			gender = excluded.gender,
			birth_date = excluded.birth_date,
			death_date = excluded.death_date,
			biography = excluded.biography,
			profile_picture = excluded.profile_picture,
			phone = excluded.phone,
			email = excluded.email,
			social_media_link = excluded.social_media_link,
			spouse_id = excluded.spouse_id,
			pos_x = excluded.pos_x,
			pos_y = excluded.pos_y,
			updated_at = excluded.updated_at
	`
	_, err := tx.ExecContext(ctx, query,
		m.ID,
		m.Name,
		entities.NormalizeName(m.Name),
		string(m.Gender),
		m.BirthDate,
		m.DeathDate,
		m.Biography,
		m.ProfilePicture,
		m.Phone,
		m.Email,
		m.SocialMediaLink,
		m.SpouseID,
		m.Position.X,
		m.Position.Y,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving member %s: %w", m.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM member_links WHERE member_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clearing links of %s: %w", m.ID, err)
	}

	insert := `INSERT INTO member_links (member_id, kind, ordinal, target_id) VALUES (?, ?, ?, ?)`
	for kind, ids := range map[entities.LinkKind][]string{
		entities.LinkParent: m.ParentIDs,
		entities.LinkChild:  m.ChildrenIDs,
	} {
		for i, id := range ids {
			if _, err := tx.ExecContext(ctx, insert, m.ID, string(kind), i, id); err != nil {
				return fmt.Errorf("saving %s link of %s: %w", kind, m.ID, err)
			}
		}
	}
	return nil
}

// FindMemberByID finds a member by id.
func (r *Repository) FindMemberByID(ctx context.Context, id string) (*entities.FamilyMember, error) {
	members, err := r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members[0], nil
}

// FindMembersByIDs finds multiple members by their ids in a single query.
func (r *Repository) FindMembersByIDs(ctx context.Context, ids []string) ([]*entities.FamilyMember, error) {
	if len(ids) == 0 {
		return []*entities.FamilyMember{}, nil
	}

	if len(ids) > maxInClause {
		return r.filterMembers(ctx, ids)
	}

	// Build placeholders for IN clause
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM members WHERE id IN (%s) ORDER BY seq`,
		memberColumns, strings.Join(placeholders, ","))
	return r.queryMembers(ctx, query, args...)
}

// filterMembers reads the whole roster and keeps the members with the given ids.
func (r *Repository) filterMembers(ctx context.Context, ids []string) ([]*entities.FamilyMember, error) {
	all, err := r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members ORDER BY seq`)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	result := make([]*entities.FamilyMember, 0, len(ids))
	for _, m := range all {
		if want[m.ID] {
			result = append(result, m)
		}
	}
	return result, nil
}

// FindMemberByName finds the first member whose name matches (case-insensitive).
func (r *Repository) FindMemberByName(ctx context.Context, name string) (*entities.FamilyMember, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE normalized_name = ? ORDER BY seq LIMIT 1`
	members, err := r.queryMembers(ctx, query, entities.NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members[0], nil
}

// ListMembers lists members in roster order with pagination.
func (r *Repository) ListMembers(ctx context.Context, limit, offset int) ([]*entities.FamilyMember, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY seq LIMIT ? OFFSET ?`
	return r.queryMembers(ctx, query, limit, offset)
}

// SearchMembers searches members by name pattern.
func (r *Repository) SearchMembers(ctx context.Context, query string, limit int) ([]*entities.FamilyMember, error) {
	pattern := "%" + entities.NormalizeName(query) + "%"
	sqlQuery := `SELECT ` + memberColumns + ` FROM members WHERE normalized_name LIKE ? ORDER BY name ASC LIMIT ?`
	return r.queryMembers(ctx, sqlQuery, pattern, limit)
}

// DeleteMember deletes a member by id.
func (r *Repository) DeleteMember(ctx context.Context, id string) error {
	return r.mutate(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("deleting member: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("member not found: %s", id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM member_links WHERE member_id = ?`, id); err != nil {
			return fmt.Errorf("deleting member links: %w", err)
		}
		return nil
	})
}

// CountMembers returns the number of members.
func (r *Repository) CountMembers(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting members: %w", err)
	}
	return count, nil
}

// Roster returns every member in roster order.
func (r *Repository) Roster(ctx context.Context) ([]entities.FamilyMember, error) {
	members, err := r.queryMembers(ctx, `SELECT `+memberColumns+` FROM members ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	roster := make([]entities.FamilyMember, len(members))
	for i, m := range members {
		roster[i] = *m
	}
	return roster, nil
}

// ReplaceRoster swaps the whole roster and family name in one transaction.
func (r *Repository) ReplaceRoster(ctx context.Context, tree *entities.FamilyTree) error {
	return r.mutate(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{`DELETE FROM member_links`, `DELETE FROM members`} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("clearing roster: %w", err)
			}
		}
		for i := range tree.Members {
			if err := saveMember(ctx, tx, &tree.Members[i]); err != nil {
				return err
			}
		}
		return setMeta(ctx, tx, metaFamilyName, tree.FamilyName)
	})
}

// FamilyName returns the stored family name, or "" when unset.
func (r *Repository) FamilyName(ctx context.Context) (string, error) {
	v, err := r.meta(ctx, metaFamilyName)
	if err != nil {
		return "", fmt.Errorf("reading family name: %w", err)
	}
	return v, nil
}

// SetFamilyName stores the family name.
func (r *Repository) SetFamilyName(ctx context.Context, name string) error {
	return r.mutate(ctx, func(tx *sql.Tx) error {
		return setMeta(ctx, tx, metaFamilyName, name)
	})
}

// Revision returns a counter that changes whenever the roster changes.
func (r *Repository) Revision(ctx context.Context) (int64, error) {
	v, err := r.meta(ctx, metaRevision)
	if err != nil {
		return 0, fmt.Errorf("reading revision: %w", err)
	}
	if v == "" {
		return 0, nil
	}
	rev, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing revision %q: %w", v, err)
	}
	return rev, nil
}

func (r *Repository) meta(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM tree_meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func setMeta(ctx context.Context, tx *sql.Tx, key, value string) error {
	query := `
		INSERT INTO tree_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// queryMembers runs a member query and attaches each member's link lists.
func (r *Repository) queryMembers(ctx context.Context, query string, args ...any) ([]*entities.FamilyMember, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}

	members := make([]*entities.FamilyMember, 0, 16)
	byID := make(map[string]*entities.FamilyMember)
	for rows.Next() {
		var m entities.FamilyMember
		var gender string
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&gender,
			&m.BirthDate,
			&m.DeathDate,
			&m.Biography,
			&m.ProfilePicture,
			&m.Phone,
			&m.Email,
			&m.SocialMediaLink,
			&m.SpouseID,
			&m.Position.X,
			&m.Position.Y,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		m.Gender = entities.Gender(gender)
		m.ParentIDs = []string{}
		m.ChildrenIDs = []string{}
		members = append(members, &m)
		byID[m.ID] = &m
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	// Release the single connection before the link query.
	rows.Close()

	if len(members) == 0 {
		return members, nil
	}
	if err := r.attachLinks(ctx, byID); err != nil {
		return nil, err
	}
	return members, nil
}

// maxInClause bounds the ids bound into one IN list. Larger sets scan the
// whole link table instead.
const maxInClause = 500

// attachLinks fills ParentIDs and ChildrenIDs in stored order.
func (r *Repository) attachLinks(ctx context.Context, byID map[string]*entities.FamilyMember) error {
	query := `SELECT member_id, kind, target_id FROM member_links`
	var args []any
	if len(byID) <= maxInClause {
		placeholders := make([]string, 0, len(byID))
		args = make([]any, 0, len(byID))
		for id := range byID {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		query += fmt.Sprintf(` WHERE member_id IN (%s)`, strings.Join(placeholders, ","))
	}
	query += ` ORDER BY member_id, kind, ordinal`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying member links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID, kind, target string
		if err := rows.Scan(&memberID, &kind, &target); err != nil {
			return fmt.Errorf("scanning member link: %w", err)
		}
		m, ok := byID[memberID]
		if !ok {
			continue
		}
		switch entities.LinkKind(kind) {
		case entities.LinkParent:
			m.ParentIDs = append(m.ParentIDs, target)
		case entities.LinkChild:
			m.ChildrenIDs = append(m.ChildrenIDs, target)
		}
	}
	return rows.Err()
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, memberID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var memberIDPtr sql.NullString
	if memberID != "" {
		memberIDPtr = sql.NullString{String: memberID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, member_id, details, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, memberIDPtr, detailsJSON, timeNow())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific member.
func (r *Repository) FindAuditLog(ctx context.Context, memberID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, member_id, details, created_at
		FROM audit_log
		WHERE member_id = ?
		ORDER BY id DESC
	`
	return r.queryAuditLog(ctx, query, memberID)
}

// FindAuditLogByAction finds audit log entries by action type.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, member_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var memberID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&memberID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.MemberID = memberID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
