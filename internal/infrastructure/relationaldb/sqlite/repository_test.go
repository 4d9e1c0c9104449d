package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func member(id, name string) *entities.FamilyMember {
	return &entities.FamilyMember{ID: id, Name: name}
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	tables := []string{"members", "member_links", "tree_meta", "audit_log"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_SaveAndFindMember(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	in := &entities.FamilyMember{
		ID:              "m1",
		Name:            "Ram Bahadur",
		Gender:          entities.GenderMale,
		BirthDate:       "1950-04-13",
		DeathDate:       "2010-09-01",
		Biography:       "Farmer from Gorkha",
		ProfilePicture:  "ram.png",
		Phone:           "+977-1-555",
		Email:           "ram@example.com",
		SocialMediaLink: "https://example.com/ram",
		SpouseID:        "m2",
		ParentIDs:       []string{"p2", "p1"},
		ChildrenIDs:     []string{"c3", "c1", "c2"},
		Position:        entities.Position{X: 12.5, Y: -4},
	}
	require.NoError(t, repo.SaveMember(ctx, in))

	got, err := repo.FindMemberByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Gender, got.Gender)
	assert.Equal(t, in.BirthDate, got.BirthDate)
	assert.Equal(t, in.DeathDate, got.DeathDate)
	assert.Equal(t, in.Biography, got.Biography)
	assert.Equal(t, in.ProfilePicture, got.ProfilePicture)
	assert.Equal(t, in.Phone, got.Phone)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.SocialMediaLink, got.SocialMediaLink)
	assert.Equal(t, "m2", got.SpouseID)
	assert.Equal(t, []string{"p2", "p1"}, got.ParentIDs, "parent order is kept")
	assert.Equal(t, []string{"c3", "c1", "c2"}, got.ChildrenIDs, "child order is kept")
	assert.Equal(t, in.Position, got.Position)
	assert.False(t, got.CreatedAt.IsZero())

	t.Run("not found returns nil", func(t *testing.T) {
		found, err := repo.FindMemberByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("dangling references are stored as given", func(t *testing.T) {
		found, err := repo.FindMemberByID(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, "m2", found.SpouseID)
		count, err := repo.CountMembers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestRepository_UpdateKeepsRosterPosition(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveMembers(ctx, []*entities.FamilyMember{
		member("a", "Asha"), member("b", "Bikash"), member("c", "Chandra"),
	}))

	updated := member("a", "Asha Devi")
	updated.ChildrenIDs = []string{"c"}
	require.NoError(t, repo.SaveMember(ctx, updated))

	roster, err := repo.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{roster[0].ID, roster[1].ID, roster[2].ID})
	assert.Equal(t, "Asha Devi", roster[0].Name)
	assert.Equal(t, []string{"c"}, roster[0].ChildrenIDs)
	assert.Equal(t, []string{}, roster[1].ChildrenIDs)

	updated.ChildrenIDs = nil
	require.NoError(t, repo.SaveMember(ctx, updated))
	got, err := repo.FindMemberByID(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got.ChildrenIDs, "links are rewritten on save")
}

func TestRepository_DuplicateLinkIDsSurvive(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	m := member("a", "Asha")
	m.ParentIDs = []string{"p", "p"}
	require.NoError(t, repo.SaveMember(ctx, m))

	got, err := repo.FindMemberByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "p"}, got.ParentIDs)
}

func TestRepository_FindMembers(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveMembers(ctx, []*entities.FamilyMember{
		member("1", "Sita Thapa"),
		member("2", "Gita Thapa"),
		member("3", "Hari Rai"),
		member("4", "sita thapa"),
	}))

	t.Run("by ids in roster order", func(t *testing.T) {
		found, err := repo.FindMembersByIDs(ctx, []string{"3", "1", "missing"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "1", found[0].ID)
		assert.Equal(t, "3", found[1].ID)
	})

	t.Run("by ids empty", func(t *testing.T) {
		found, err := repo.FindMembersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("by name is case-insensitive and takes the first", func(t *testing.T) {
		found, err := repo.FindMemberByName(ctx, "  SITA thapa ")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "1", found.ID)
	})

	t.Run("by name not found", func(t *testing.T) {
		found, err := repo.FindMemberByName(ctx, "Nobody")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("list with pagination", func(t *testing.T) {
		page, err := repo.ListMembers(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "2", page[0].ID)
		assert.Equal(t, "3", page[1].ID)
	})

	t.Run("search", func(t *testing.T) {
		found, err := repo.SearchMembers(ctx, "thapa", 10)
		require.NoError(t, err)
		assert.Len(t, found, 3)

		limited, err := repo.SearchMembers(ctx, "thapa", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}

func TestRepository_DeleteMember(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	m := member("a", "Asha")
	m.ParentIDs = []string{"p"}
	require.NoError(t, repo.SaveMember(ctx, m))

	require.NoError(t, repo.DeleteMember(ctx, "a"))

	found, err := repo.FindMemberByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, found)

	var links int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM member_links`).Scan(&links))
	assert.Zero(t, links)

	err = repo.DeleteMember(ctx, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member not found")
}

func TestRepository_ReplaceRoster(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveMember(ctx, member("old", "Old Member")))

	tree := &entities.FamilyTree{
		FamilyName: "Thapa",
		Members: []entities.FamilyMember{
			{ID: "b", Name: "Bishnu", ChildrenIDs: []string{"a"}},
			{ID: "a", Name: "Anita", ParentIDs: []string{"b"}},
		},
	}
	require.NoError(t, repo.ReplaceRoster(ctx, tree))

	roster, err := repo.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "b", roster[0].ID)
	assert.Equal(t, []string{"a"}, roster[0].ChildrenIDs)
	assert.Equal(t, "a", roster[1].ID)
	assert.Equal(t, []string{"b"}, roster[1].ParentIDs)

	name, err := repo.FamilyName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Thapa", name)
}

func TestRepository_Roster_Large(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	members := make([]*entities.FamilyMember, 0, maxInClause+10)
	for i := 0; i < maxInClause+10; i++ {
		m := member(fmt.Sprintf("m%04d", i), fmt.Sprintf("Member %d", i))
		if i > 0 {
			m.ParentIDs = []string{fmt.Sprintf("m%04d", i-1)}
		}
		members = append(members, m)
	}
	require.NoError(t, repo.SaveMembers(ctx, members))

	roster, err := repo.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, maxInClause+10)
	assert.Equal(t, []string{"m0499"}, roster[500].ParentIDs)

	ids := make([]string, 0, maxInClause+1)
	for i := maxInClause + 9; i >= 9; i-- {
		ids = append(ids, fmt.Sprintf("m%04d", i))
	}
	found, err := repo.FindMembersByIDs(ctx, ids)
	require.NoError(t, err)
	require.Len(t, found, maxInClause+1)
	assert.Equal(t, "m0009", found[0].ID)
	assert.Equal(t, []string{"m0008"}, found[0].ParentIDs)
}

func TestRepository_Revision(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rev, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Zero(t, rev)

	require.NoError(t, repo.SaveMember(ctx, member("a", "Asha")))
	rev1, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Greater(t, rev1, rev)

	require.NoError(t, repo.SetFamilyName(ctx, "Rai"))
	rev2, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Greater(t, rev2, rev1)

	_, err = repo.FindMemberByID(ctx, "a")
	require.NoError(t, err)
	rev3, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, rev2, rev3, "reads do not change the revision")

	require.Error(t, repo.DeleteMember(ctx, "missing"))
	rev4, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, rev3, rev4, "failed mutations roll back")
}

func TestRepository_FamilyName_Unset(t *testing.T) {
	repo := setupTestRepo(t)

	name, err := repo.FamilyName(context.Background())
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestRepository_AuditLog(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("log action with details", func(t *testing.T) {
		err := repo.LogAction(ctx, entities.AuditMemberAdded, "m-1", map[string]any{
			"name":    "Asha",
			"parents": 2,
		})
		require.NoError(t, err)
	})

	t.Run("log action without member ID", func(t *testing.T) {
		err := repo.LogAction(ctx, entities.AuditRosterImport, "", map[string]any{
			"format": "json",
		})
		require.NoError(t, err)
	})

	t.Run("log action without details", func(t *testing.T) {
		err := repo.LogAction(ctx, entities.AuditMemberDeleted, "m-2", nil)
		require.NoError(t, err)
	})

	t.Run("find by member", func(t *testing.T) {
		entries, err := repo.FindAuditLog(ctx, "m-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entities.AuditMemberAdded, entries[0].Action)
		assert.Equal(t, "Asha", entries[0].Details["name"])
	})

	t.Run("find by action", func(t *testing.T) {
		entries, err := repo.FindAuditLogByAction(ctx, entities.AuditRosterImport, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("find by action with limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			err := repo.LogAction(ctx, entities.AuditLinkAdded, "", nil)
			require.NoError(t, err)
		}

		entries, err := repo.FindAuditLogByAction(ctx, entities.AuditLinkAdded, 3)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestRepository_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineage.db")
	ctx := context.Background()

	repo, err := NewRepository(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.SaveMember(ctx, member("a", "Asha")))
	require.NoError(t, repo.Close())

	reopened, err := NewRepository(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.FindMemberByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Asha", found.Name)
	assert.Equal(t, path, reopened.Path())
}
