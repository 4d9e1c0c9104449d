// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/config"
)

// Opener opens the roster database stored at path, creating it if needed.
type Opener func(path string) (ports.RelationalDB, error)

// TreeHandler manages the registry of family trees and their databases.
type TreeHandler struct {
	basePath string
	open     Opener
}

// NewTreeHandler creates a new tree handler rooted at basePath.
func NewTreeHandler(basePath string, open Opener) *TreeHandler {
	return &TreeHandler{
		basePath: basePath,
		open:     open,
	}
}

// CreateTreeResult contains the result of creating a tree.
type CreateTreeResult struct {
	ConfigPath  string
	DBPath      string
	Initialized bool // Whether the config directory was created as well
}

// TreeInfo describes one registered tree.
type TreeInfo struct {
	Name        string `json:"name"`
	FamilyName  string `json:"familyName,omitempty"`
	Description string `json:"description,omitempty"`
	DBPath      string `json:"dbPath"`
	Members     int    `json:"members"`
}

// HandleCreate registers a tree and creates its database. The config
// directory is initialized on first use.
func (h *TreeHandler) HandleCreate(ctx context.Context, name, familyName, description string) (*CreateTreeResult, error) {
	result := &CreateTreeResult{
		ConfigPath: config.ConfigFilePath(h.basePath),
		DBPath:     config.SQLitePathForTree(h.basePath, name),
	}

	if !config.Exists(h.basePath) {
		if err := config.WriteDefault(h.basePath); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		result.Initialized = true
	}

	trees, err := config.LoadTrees(h.basePath)
	if err != nil {
		return nil, err
	}
	if trees.Exists(name) {
		return nil, fmt.Errorf("tree %q already exists", name)
	}
	for _, other := range trees.Names() {
		if config.SanitizeTreeName(other) == config.SanitizeTreeName(name) {
			return nil, fmt.Errorf("tree %q would share a directory with %q", name, other)
		}
	}

	if err := os.MkdirAll(config.TreeDir(h.basePath, name), 0755); err != nil {
		return nil, fmt.Errorf("creating tree directory: %w", err)
	}

	db, err := h.open(result.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening tree database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if familyName != "" {
		if err := db.SetFamilyName(ctx, familyName); err != nil {
			return nil, fmt.Errorf("storing family name: %w", err)
		}
	}

	trees.Add(name, config.TreeEntry{FamilyName: familyName, Description: description})
	if err := trees.Save(h.basePath); err != nil {
		return nil, err
	}

	return result, nil
}

// HandleList returns every registered tree with its member count, sorted by name.
func (h *TreeHandler) HandleList(ctx context.Context) ([]TreeInfo, error) {
	trees, err := config.LoadTrees(h.basePath)
	if err != nil {
		return nil, err
	}

	infos := make([]TreeInfo, 0, len(trees.Trees))
	for _, name := range trees.Names() {
		entry := trees.Trees[name]
		info := TreeInfo{
			Name:        name,
			FamilyName:  entry.FamilyName,
			Description: entry.Description,
			DBPath:      config.SQLitePathForTree(h.basePath, name),
		}

		count, err := h.countMembers(ctx, info.DBPath)
		if err != nil {
			return nil, fmt.Errorf("counting members of %q: %w", name, err)
		}
		info.Members = count

		infos = append(infos, info)
	}

	return infos, nil
}

// HandleDelete removes a tree and its database. Without force a tree that
// still has members is left alone.
func (h *TreeHandler) HandleDelete(ctx context.Context, name string, force bool) error {
	trees, err := config.LoadTrees(h.basePath)
	if err != nil {
		return err
	}
	if _, err := trees.Get(name); err != nil {
		return err
	}

	if !force {
		count, err := h.countMembers(ctx, config.SQLitePathForTree(h.basePath, name))
		if err != nil {
			return fmt.Errorf("counting members: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("tree %q contains %d members, use --force to delete", name, count)
		}
	}

	if err := os.RemoveAll(config.TreeDir(h.basePath, name)); err != nil {
		return fmt.Errorf("removing tree directory: %w", err)
	}

	trees.Remove(name)
	return trees.Save(h.basePath)
}

// countMembers opens the database at path and counts its members. A missing
// database counts as empty.
func (h *TreeHandler) countMembers(ctx context.Context, path string) (int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}

	db, err := h.open(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	return db.CountMembers(ctx)
}
