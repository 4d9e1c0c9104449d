package parsers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSONParser parses rosters from JSON. It accepts the tree envelope
// {"familyName": ..., "members": [...]} as well as a bare member array.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed roster.
func (p *JSONParser) Parse(r io.Reader) (*RawTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("parsing JSON: empty input")
	}

	tree := &RawTree{}
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &tree.Members); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	case '{':
		if err := json.Unmarshal(trimmed, tree); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("parsing JSON: expected object or array, got %q", trimmed[0])
	}

	if tree.Members == nil {
		tree.Members = []RawMember{}
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range tree.Members {
		tree.Members[i].LineNum = i + 1
	}

	return tree, nil
}
