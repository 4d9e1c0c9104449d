package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
)

func TestKinshipHandler_HandleRelation(t *testing.T) {
	handler := newKinshipHandler(family(), services.WithVocabulary(kinship.English))
	ctx := context.Background()

	tests := []struct {
		name      string
		from, to  string
		wantLabel kinship.Label
		wantText  string
		wantFound bool
	}{
		{"by id", "x", "s", kinship.LabelElderSister, "Elder Sister", true},
		{"by name", "Sita", "ram", kinship.LabelBrother, "Younger Brother", true},
		{"spouse", "Hari", "Gita", kinship.LabelWife, "Wife", true},
		{"unknown target", "x", "Nobody", kinship.LabelUnknown, "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler.HandleRelation(ctx, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, result.Label)
			assert.Equal(t, tt.wantText, result.Text)
			assert.NotNil(t, result.FromMember)
			assert.Equal(t, tt.wantFound, result.ToMember != nil)
		})
	}
}

func TestKinshipHandler_HandleRelation_UnknownPassesRef(t *testing.T) {
	handler := newKinshipHandler(family())

	result, err := handler.HandleRelation(context.Background(), "ghost", "x")
	require.NoError(t, err)
	assert.Equal(t, "ghost", result.From)
	assert.Equal(t, "x", result.To)
	assert.Equal(t, kinship.TierUnknown, result.Tier)
}

func TestKinshipHandler_HandleLabels(t *testing.T) {
	handler := newKinshipHandler(family())

	labels, err := handler.HandleLabels(context.Background(), "Ram")
	require.NoError(t, err)
	require.Len(t, labels, 4)
	assert.Equal(t, kinship.LabelFather, labels[0].Label)
	assert.Equal(t, kinship.LabelMother, labels[1].Label)
	assert.True(t, labels[2].Focused)
	assert.Equal(t, kinship.LabelElderSister, labels[3].Label)
	assert.Equal(t, "दिदी", labels[3].Text)

	_, err = handler.HandleLabels(context.Background(), "Nobody")
	assert.ErrorIs(t, err, services.ErrMemberNotFound)
}

func TestListVocabulary(t *testing.T) {
	tests := []struct {
		locale  string
		wantTag string
	}{
		{"", "ne"},
		{"ne-NP", "ne"},
		{"en-GB", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			vocab, entries := ListVocabulary(tt.locale)
			base, _ := vocab.Tag().Base()
			assert.Equal(t, tt.wantTag, base.String())
			assert.Len(t, entries, len(kinship.AllLabels()))
			assert.Equal(t, "UNKNOWN", entries[0].Key)
		})
	}
}
