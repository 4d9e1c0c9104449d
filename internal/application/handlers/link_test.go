package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/mocks"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

func TestLinkHandler_HandleLink(t *testing.T) {
	db := mocks.NewRelationalDB(newMember("a", "Hari"), newMember("b", "Ram"))
	handler := NewLinkHandler(services.NewRosterService(db))

	result, err := handler.HandleLink(context.Background(), "Ram", "parent", "Hari", true)
	require.NoError(t, err)
	assert.Equal(t, "b", result.Member.ID)
	assert.Equal(t, entities.LinkParent, result.Kind)
	assert.Equal(t, "a", result.Target.ID)

	a, err := db.FindMemberByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, a.ChildrenIDs)
}

func TestLinkHandler_HandleLink_ChangesKinship(t *testing.T) {
	db := family()
	handler := NewLinkHandler(services.NewRosterService(db))
	kin := newKinshipHandler(db)
	ctx := context.Background()

	require.NoError(t, db.SaveMember(ctx, &entities.FamilyMember{ID: "w", Name: "Maya", Gender: entities.GenderFemale}))

	before, err := kin.HandleRelation(ctx, "x", "w")
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelFamilyMember, before.Label)

	_, err = handler.HandleLink(ctx, "x", "spouse", "w", false)
	require.NoError(t, err)

	after, err := kin.HandleRelation(ctx, "x", "w")
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelWife, after.Label)

	// One-directional: Maya does not list Ram as spouse.
	back, err := kin.HandleRelation(ctx, "w", "x")
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelFamilyMember, back.Label)
}

func TestLinkHandler_HandleUnlink(t *testing.T) {
	db := family()
	handler := NewLinkHandler(services.NewRosterService(db))

	_, err := handler.HandleUnlink(context.Background(), "x", "parent", "p", true)
	require.NoError(t, err)

	x, err := db.FindMemberByID(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"m"}, x.ParentIDs)

	p, err := db.FindMemberByID(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"s"}, p.ChildrenIDs)
}

func TestLinkHandler_Errors(t *testing.T) {
	handler := NewLinkHandler(services.NewRosterService(family()))
	ctx := context.Background()

	tests := []struct {
		name    string
		member  string
		kind    string
		target  string
		wantErr error
		wantMsg string
	}{
		{name: "bad kind", member: "x", kind: "sibling", target: "s", wantMsg: "invalid link kind"},
		{name: "unknown member", member: "ghost", kind: "parent", target: "p", wantErr: services.ErrMemberNotFound},
		{name: "unknown target", member: "x", kind: "parent", target: "ghost", wantErr: services.ErrMemberNotFound},
		{name: "self link", member: "x", kind: "spouse", target: "Ram", wantErr: services.ErrSelfLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.HandleLink(ctx, tt.member, tt.kind, tt.target, false)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
