package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
)

func TestJSONParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		familyName string
		expected   []RawMember
	}{
		{
			name:  "bare array",
			input: `[{"id": "a", "name": "Ram", "gender": "Male"}]`,
			expected: []RawMember{
				{ID: "a", Name: "Ram", Gender: "Male", LineNum: 1},
			},
		},
		{
			name:       "tree envelope",
			input:      `{"familyName": "Thapa", "members": [{"id": "a", "name": "Ram"}, {"id": "b", "name": "Sita"}]}`,
			familyName: "Thapa",
			expected: []RawMember{
				{ID: "a", Name: "Ram", LineNum: 1},
				{ID: "b", Name: "Sita", LineNum: 2},
			},
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: []RawMember{},
		},
		{
			name:     "envelope without members",
			input:    `{"familyName": ""}`,
			expected: []RawMember{},
		},
		{
			name:  "null spouse",
			input: `[{"id": "a", "name": "Ram", "spouseId": null}]`,
			expected: []RawMember{
				{ID: "a", Name: "Ram", LineNum: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.familyName, result.FamilyName)
			assert.Equal(t, tt.expected, result.Members)
		})
	}
}

func TestJSONParser_Parse_AllFields(t *testing.T) {
	input := `[{
		"id": "m1",
		"name": "Hari Thapa",
		"gender": "Male",
		"birthDate": "1950-04-12",
		"deathDate": "2020-01-01",
		"biography": "Farmer",
		"profilePicture": "hari.png",
		"phone": "+977-1",
		"email": "hari@example.com",
		"socialMediaLink": "https://example.com/hari",
		"spouseId": "m2",
		"parentIds": ["p1", "p2"],
		"childrenIds": ["c1"],
		"position": {"x": 120.5, "y": -40}
	}]`

	parser := &JSONParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Members, 1)

	m := result.Members[0]
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "Hari Thapa", m.Name)
	assert.Equal(t, "Male", m.Gender)
	assert.Equal(t, "1950-04-12", m.BirthDate)
	assert.Equal(t, "2020-01-01", m.DeathDate)
	assert.Equal(t, "Farmer", m.Biography)
	assert.Equal(t, "hari.png", m.ProfilePicture)
	assert.Equal(t, "+977-1", m.Phone)
	assert.Equal(t, "hari@example.com", m.Email)
	assert.Equal(t, "https://example.com/hari", m.SocialMediaLink)
	assert.Equal(t, "m2", m.SpouseID)
	assert.Equal(t, []string{"p1", "p2"}, m.ParentIDs)
	assert.Equal(t, []string{"c1"}, m.ChildrenIDs)
	assert.Equal(t, Position{X: 120.5, Y: -40}, m.Position)
	assert.Equal(t, 1, m.LineNum)
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json"},
		{"empty", "   "},
		{"truncated array", `[{"name": "Ram"`},
		{"wrong member type", `{"members": "Ram"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}
}

func TestCSVParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawMember
	}{
		{
			name:  "minimal columns",
			input: "name\nRam\nSita",
			expected: []RawMember{
				{Name: "Ram", LineNum: 2},
				{Name: "Sita", LineNum: 3},
			},
		},
		{
			name:  "id lists",
			input: "id,name,parent_ids,children_ids\nc,Kid,a;b,\na,Dad,,c",
			expected: []RawMember{
				{ID: "c", Name: "Kid", ParentIDs: []string{"a", "b"}, LineNum: 2},
				{ID: "a", Name: "Dad", ChildrenIDs: []string{"c"}, LineNum: 3},
			},
		},
		{
			name:  "header case and spacing",
			input: " ID , Name , Gender \nx, Maya, Female",
			expected: []RawMember{
				{ID: "x", Name: "Maya", Gender: "Female", LineNum: 2},
			},
		},
		{
			name:  "short rows",
			input: "id,name,gender,biography\na,Ram\n",
			expected: []RawMember{
				{ID: "a", Name: "Ram", LineNum: 2},
			},
		},
		{
			name:     "header only",
			input:    "id,name\n",
			expected: []RawMember{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Members)
		})
	}
}

func TestCSVParser_Parse_AllColumns(t *testing.T) {
	input := strings.Join(CSVColumns, ",") + "\n" +
		`m1,Hari,Male,1950-04-12,2020-01-01,m2,p1;p2,c1,"Farmer, retired",hari.png,+977-1,hari@example.com,https://example.com/hari,12.5,-3`

	parser := &CSVParser{}
	result, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Members, 1)

	m := result.Members[0]
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "Farmer, retired", m.Biography)
	assert.Equal(t, "m2", m.SpouseID)
	assert.Equal(t, []string{"p1", "p2"}, m.ParentIDs)
	assert.Equal(t, []string{"c1"}, m.ChildrenIDs)
	assert.Equal(t, "https://example.com/hari", m.SocialMediaLink)
	assert.Equal(t, Position{X: 12.5, Y: -3}, m.Position)
}

func TestCSVParser_Parse_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"missing name column", "id,gender\na,Male", "missing required column: name"},
		{"empty input", "", "reading CSV header"},
		{"bad position", "name,pos_x\nRam,left", "line 2: invalid pos_x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &CSVParser{}, ForFormat("CSV"))
	assert.Nil(t, ForFormat("xml"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("family.json"))
	assert.IsType(t, &CSVParser{}, ForFile("/tmp/Family.CSV"))
	assert.Nil(t, ForFile("family.txt"))
	assert.Nil(t, ForFile("family"))
}

func TestSplitIDs(t *testing.T) {
	assert.Nil(t, splitIDs(""))
	assert.Nil(t, splitIDs("   "))
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a ; ;b;"))
}

func TestRawTree_FamilyTree(t *testing.T) {
	raw := &RawTree{
		FamilyName: "Thapa",
		Members: []RawMember{
			{ID: "a", Name: "Ram", Gender: "m", ChildrenIDs: []string{"b"}, Position: Position{X: 1, Y: 2}},
			{ID: "b", Name: "Sita", Gender: "Female", ParentIDs: []string{"a"}},
			{Name: "No Id", Gender: "robot"},
		},
	}

	tree := raw.FamilyTree()
	assert.Equal(t, "Thapa", tree.FamilyName)
	require.Len(t, tree.Members, 3)
	assert.Equal(t, entities.GenderMale, tree.Members[0].Gender)
	assert.Equal(t, entities.Position{X: 1, Y: 2}, tree.Members[0].Position)
	assert.Equal(t, entities.GenderFemale, tree.Members[1].Gender)
	assert.Equal(t, []string{"a"}, tree.Members[1].ParentIDs)
	assert.Empty(t, tree.Members[2].ID)
	assert.Equal(t, entities.GenderUnspecified, tree.Members[2].Gender)
}
