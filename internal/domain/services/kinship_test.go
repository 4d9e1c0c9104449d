package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/mocks"
)

// smallFamily is a grandfather, a married couple and their two children.
func smallFamily() *mocks.RelationalDB {
	return mocks.NewRelationalDB(
		entities.FamilyMember{ID: "g", Name: "Bhim", Gender: entities.GenderMale, ChildrenIDs: []string{"p"}},
		entities.FamilyMember{ID: "p", Name: "Hari", Gender: entities.GenderMale, SpouseID: "m",
			ParentIDs: []string{"g"}, ChildrenIDs: []string{"x", "sib"}},
		entities.FamilyMember{ID: "m", Name: "Gita", Gender: entities.GenderFemale, SpouseID: "p",
			ChildrenIDs: []string{"x", "sib"}},
		entities.FamilyMember{ID: "x", Name: "Ram", Gender: entities.GenderMale, BirthDate: "1990-05-01",
			ParentIDs: []string{"p", "m"}},
		entities.FamilyMember{ID: "sib", Name: "Sita", Gender: entities.GenderFemale, BirthDate: "1985-09-12",
			ParentIDs: []string{"p", "m"}},
	)
}

func TestKinshipService_Relationship(t *testing.T) {
	service := NewKinshipService(smallFamily())
	ctx := context.Background()

	tests := []struct {
		name      string
		from, to  string
		wantLabel kinship.Label
		wantTier  kinship.Tier
		wantText  string
	}{
		{"elder sister", "x", "sib", kinship.LabelElderSister, kinship.TierDirect, "दिदी"},
		{"younger brother", "sib", "x", kinship.LabelBrother, kinship.TierDirect, "भाइ"},
		{"father", "x", "p", kinship.LabelFather, kinship.TierDirect, "बुबा"},
		{"grandfather", "x", "g", kinship.LabelGrandfather, kinship.TierExtended, "हजुरबुवा"},
		{"self", "x", "x", kinship.LabelSelf, kinship.TierSelf, kinship.Nepali.Text(kinship.LabelSelf)},
		{"unknown id", "x", "ghost", kinship.LabelUnknown, kinship.TierUnknown, kinship.Nepali.Text(kinship.LabelUnknown)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := service.Relationship(ctx, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.from, rel.From)
			assert.Equal(t, tt.to, rel.To)
			assert.Equal(t, tt.wantLabel, rel.Label)
			assert.Equal(t, tt.wantTier, rel.Tier)
			assert.Equal(t, tt.wantText, rel.Text)
		})
	}
}

func TestKinshipService_Relationship_English(t *testing.T) {
	service := NewKinshipService(smallFamily(), WithVocabulary(kinship.English))

	rel, err := service.Relationship(context.Background(), "x", "sib")
	require.NoError(t, err)
	assert.Equal(t, "Elder Sister", rel.Text)
	assert.Same(t, kinship.English, service.Vocabulary())
}

func TestKinshipService_Relation_JSON(t *testing.T) {
	service := NewKinshipService(smallFamily())

	rel, err := service.Relationship(context.Background(), "x", "g")
	require.NoError(t, err)

	data, err := json.Marshal(rel)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"x","to":"g","label":"GRANDFATHER","text":"हजुरबुवा","tier":"extended"}`, string(data))
}

func TestKinshipService_Labels(t *testing.T) {
	service := NewKinshipService(smallFamily(), WithVocabulary(kinship.English))

	labels, err := service.Labels(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, labels, 5)

	want := []struct {
		id      string
		label   kinship.Label
		focused bool
	}{
		{"g", kinship.LabelGrandfather, false},
		{"p", kinship.LabelFather, false},
		{"m", kinship.LabelMother, false},
		{"x", kinship.LabelUnknown, true},
		{"sib", kinship.LabelElderSister, false},
	}
	for i, w := range want {
		assert.Equal(t, w.id, labels[i].ID)
		assert.Equal(t, w.label, labels[i].Label, w.id)
		assert.Equal(t, w.focused, labels[i].Focused, w.id)
	}
	assert.Equal(t, "Ram", labels[3].Name)
	assert.Empty(t, labels[3].Text)
	assert.Equal(t, "Mother", labels[2].Text)
}

func TestKinshipService_Labels_UnknownFocus(t *testing.T) {
	service := NewKinshipService(smallFamily())

	_, err := service.Labels(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestKinshipService_CachesPerRevision(t *testing.T) {
	db := smallFamily()
	recorder := mocks.NewRecorder()
	service := NewKinshipService(db, WithRecorder(recorder))
	ctx := context.Background()

	first, err := service.Engine(ctx)
	require.NoError(t, err)
	second, err := service.Engine(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, db.RosterCalls)
	assert.Equal(t, []int{5}, recorder.Builds)

	db.Bump()
	third, err := service.Engine(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, db.RosterCalls)
}

func TestKinshipService_SeesRosterEdits(t *testing.T) {
	db := smallFamily()
	roster := NewRosterService(db)
	service := NewKinshipService(db)
	ctx := context.Background()

	rel, err := service.Relationship(ctx, "x", "kid")
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelUnknown, rel.Label)

	_, err = roster.Add(ctx, &entities.FamilyMember{
		ID:        "kid",
		Name:      "Anu",
		Gender:    entities.GenderFemale,
		ParentIDs: []string{"x"},
	})
	require.NoError(t, err)

	rel, err = service.Relationship(ctx, "x", "kid")
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelDaughter, rel.Label)

	rel, err = service.Relationship(ctx, "p", "kid")
	require.NoError(t, err)
	assert.Equal(t, kinship.LabelGranddaughter, rel.Label)
}

func TestKinshipService_RecordsQueries(t *testing.T) {
	recorder := mocks.NewRecorder()
	service := NewKinshipService(smallFamily(), WithRecorder(recorder))
	ctx := context.Background()

	for _, pair := range [][2]string{{"x", "sib"}, {"x", "p"}, {"x", "g"}, {"x", "ghost"}, {"g", "m"}} {
		_, err := service.Relationship(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	assert.Equal(t, 2, recorder.QueryCount(string(kinship.TierDirect)))
	assert.Equal(t, 1, recorder.QueryCount(string(kinship.TierExtended)))
	assert.Equal(t, 1, recorder.QueryCount(string(kinship.TierUnknown)))
	assert.Equal(t, 1, recorder.QueryCount(string(kinship.TierFallback)))
	assert.Equal(t, 1, recorder.BuildCount())
}

func TestKinshipService_Concurrent(t *testing.T) {
	db := smallFamily()
	service := NewKinshipService(db)
	ctx := context.Background()

	var g errgroup.Group
	results := make([]kinship.Label, 32)
	for i := range results {
		i := i
		g.Go(func() error {
			rel, err := service.Relationship(ctx, "x", "sib")
			if err != nil {
				return err
			}
			results[i] = rel.Label
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, l := range results {
		assert.Equal(t, kinship.LabelElderSister, l)
	}
}

func TestKinshipService_StoreError(t *testing.T) {
	db := smallFamily()
	db.Err = errors.New("database is locked")
	service := NewKinshipService(db)

	_, err := service.Relationship(context.Background(), "x", "sib")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	_, err = service.Labels(context.Background(), "x")
	require.Error(t, err)
}
