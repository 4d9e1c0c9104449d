package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ListSeparator splits multi-valued id columns such as parent_ids.
const ListSeparator = ";"

// CSVColumns is the column order written by exporters and accepted here.
var CSVColumns = []string{
	"id", "name", "gender", "birth_date", "death_date", "spouse_id",
	"parent_ids", "children_ids", "biography", "profile_picture",
	"phone", "email", "social_media_link", "pos_x", "pos_y",
}

// CSVParser parses rosters from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns the parsed roster.
// Only the name column is required; see CSVColumns for the rest.
func (p *CSVParser) Parse(r io.Reader) (*RawTree, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	members, err := p.readRecords(reader, colIndex)
	if err != nil {
		return nil, err
	}
	return &RawTree{Members: members}, nil
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawMembers.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawMember, error) {
	members := []RawMember{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		member, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

// parseRecord converts a CSV record to a RawMember.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawMember, error) {
	member := RawMember{
		ID:              getColumn(record, colIndex, "id"),
		Name:            getColumn(record, colIndex, "name"),
		Gender:          getColumn(record, colIndex, "gender"),
		BirthDate:       getColumn(record, colIndex, "birth_date"),
		DeathDate:       getColumn(record, colIndex, "death_date"),
		SpouseID:        getColumn(record, colIndex, "spouse_id"),
		ParentIDs:       splitIDs(getColumn(record, colIndex, "parent_ids")),
		ChildrenIDs:     splitIDs(getColumn(record, colIndex, "children_ids")),
		Biography:       getColumn(record, colIndex, "biography"),
		ProfilePicture:  getColumn(record, colIndex, "profile_picture"),
		Phone:           getColumn(record, colIndex, "phone"),
		Email:           getColumn(record, colIndex, "email"),
		SocialMediaLink: getColumn(record, colIndex, "social_media_link"),
		LineNum:         lineNum,
	}

	for col, dst := range map[string]*float64{"pos_x": &member.Position.X, "pos_y": &member.Position.Y} {
		s := getColumn(record, colIndex, col)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return RawMember{}, fmt.Errorf("line %d: invalid %s value %q: %w", lineNum, col, s, err)
		}
		*dst = v
	}

	return member, nil
}

// splitIDs splits a separator-joined id list, dropping blanks.
func splitIDs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ListSeparator)
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
