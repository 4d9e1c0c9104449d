package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/parsers"
)

// FileHandler labels rosters read straight from JSON or CSV files, without
// going through a tree database.
type FileHandler struct {
	vocab    *kinship.Vocabulary
	recorder ports.KinshipRecorder
}

// NewFileHandler creates a new file handler. A nil recorder discards measurements.
func NewFileHandler(vocab *kinship.Vocabulary, recorder ports.KinshipRecorder) *FileHandler {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	if vocab == nil {
		vocab = kinship.Nepali
	}
	return &FileHandler{
		vocab:    vocab,
		recorder: recorder,
	}
}

// FileLabels is a roster file labelled relative to one focus member.
type FileLabels struct {
	FilePath   string
	FamilyName string
	Members    int
	Labels     []services.NodeLabel
}

// HandleFile reads the roster at filePath and labels every member relative
// to focusRef, which may be an id or a name.
func (h *FileHandler) HandleFile(ctx context.Context, filePath, focusRef string) (*FileLabels, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("accessing file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	parser := parsers.ForFile(absPath)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", absPath)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raw, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := raw.FamilyTree()
	labels, err := h.label(tree.Members, focusRef)
	if err != nil {
		return nil, err
	}

	return &FileLabels{
		FilePath:   absPath,
		FamilyName: tree.FamilyName,
		Members:    len(tree.Members),
		Labels:     labels,
	}, nil
}

func (h *FileHandler) label(members []entities.FamilyMember, focusRef string) ([]services.NodeLabel, error) {
	focus := findRef(members, focusRef)
	if focus == nil {
		return nil, fmt.Errorf("%w: %s", services.ErrMemberNotFound, focusRef)
	}

	start := time.Now()
	engine := kinship.New(members, kinship.WithVocabulary(h.vocab))
	h.recorder.ObserveBuild(len(members), time.Since(start))

	labels := make([]services.NodeLabel, 0, len(members))
	for i := range members {
		m := &members[i]
		node := services.NodeLabel{ID: m.ID, Name: m.Name}
		if m == focus {
			node.Focused = true
			labels = append(labels, node)
			continue
		}

		qstart := time.Now()
		res := engine.Resolve(focus.ID, m.ID)
		h.recorder.ObserveQuery(string(res.Tier), time.Since(qstart))

		node.Label = res.Label
		node.Text = h.vocab.Text(res.Label)
		node.Tier = res.Tier
		labels = append(labels, node)
	}
	return labels, nil
}

// findRef returns the first member whose id is ref, else the first whose
// name matches ref case-insensitively.
func findRef(members []entities.FamilyMember, ref string) *entities.FamilyMember {
	for i := range members {
		if members[i].ID == ref {
			return &members[i]
		}
	}
	norm := entities.NormalizeName(ref)
	for i := range members {
		if entities.NormalizeName(members[i].Name) == norm {
			return &members[i]
		}
	}
	return nil
}
