package kinship

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

func TestProject(t *testing.T) {
	members := []entities.FamilyMember{
		{
			ID:             "b",
			Name:           "Bina",
			Gender:         "female",
			BirthDate:      "1990-05-17",
			Biography:      "dropped",
			ProfilePicture: "dropped.png",
			SpouseID:       "c",
			ParentIDs:      []string{"p1", "p2"},
			ChildrenIDs:    []string{"k"},
			Position:       entities.Position{X: 10, Y: 20},
		},
		{ID: "a", Gender: "Other", BirthDate: "not a date"},
	}

	view := Project(members)
	require.Len(t, view, 2)

	assert.Equal(t, "b", view[0].ID)
	assert.Equal(t, Female, view[0].Gender)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), view[0].BirthDate)
	assert.Equal(t, "c", view[0].SpouseID)
	assert.Equal(t, []string{"p1", "p2"}, view[0].ParentIDs)
	assert.Equal(t, []string{"k"}, view[0].ChildrenIDs)

	assert.Equal(t, "a", view[1].ID)
	assert.Equal(t, Unspecified, view[1].Gender)
	assert.True(t, view[1].BirthDate.IsZero())

	members[0].ParentIDs[0] = "changed"
	assert.Equal(t, "p1", view[0].ParentIDs[0])
}

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "date only", input: "2001-02-03"},
		{name: "rfc3339", input: "2001-02-03T04:05:06+05:45"},
		{name: "local timestamp", input: "2001-02-03T04:05:06"},
		{name: "empty", input: "", zero: true},
		{name: "garbage", input: "03/02/2001", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.zero, ParseBirthDate(tt.input).IsZero())
		})
	}
}
