package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/application/handlers"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/services"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/config"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/logging"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config         *config.Config
	Trees          *config.TreesConfig
	Logger         *slog.Logger
	MemberHandler  *handlers.MemberHandler
	LinkHandler    *handlers.LinkHandler
	KinshipHandler *handlers.KinshipHandler
	ImportHandler  *handlers.ImportHandler
}

// env is the process setup shared by every command: config with flag
// overrides applied, plus the logger built from it.
type env struct {
	cwd    string
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// loadEnv loads the config from the working directory. When allowMissing is
// set, a directory without a .lineage config falls back to defaults.
func loadEnv(allowMissing bool) (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	var cfg *config.Config
	if allowMissing && !config.Exists(cwd) {
		cfg = config.Default()
	} else {
		cfg, err = config.Load(cwd)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if globalLocale != "" {
		cfg.Locale = globalLocale
	}
	if globalLogLevel != "" {
		cfg.Logging.Level = globalLogLevel
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	slog.SetDefault(logger)

	return &env{cwd: cwd, cfg: cfg, logger: logger, closer: closer}, nil
}

// vocabulary returns the kinship vocabulary for the configured locale.
func (e *env) vocabulary() *kinship.Vocabulary {
	return kinship.VocabularyFor(e.cfg.Locale)
}

// withDeps loads config, opens the selected tree and builds dependencies,
// then calls the provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	e, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer e.closer.Close()

	trees, err := config.LoadTrees(e.cwd)
	if err != nil {
		return fmt.Errorf("loading trees: %w", err)
	}

	if globalTree == "" {
		return errors.New("tree is required (use --tree flag)")
	}
	if _, err := trees.Get(globalTree); err != nil {
		return err
	}

	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{
		Path: config.SQLitePathForTree(e.cwd, globalTree),
	})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	if err := relationalDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	logger := e.logger.With("tree", globalTree)
	rosterService := services.NewRosterService(relationalDB)
	kinshipService := services.NewKinshipService(relationalDB,
		services.WithVocabulary(e.vocabulary()),
		services.WithLogger(logger),
	)
	importService := services.NewImportService(relationalDB)

	deps := &Deps{
		Config:         e.cfg,
		Trees:          trees,
		Logger:         logger,
		MemberHandler:  handlers.NewMemberHandler(rosterService),
		LinkHandler:    handlers.NewLinkHandler(rosterService),
		KinshipHandler: handlers.NewKinshipHandler(rosterService, kinshipService),
		ImportHandler:  handlers.NewImportHandler(importService),
	}

	return fn(deps)
}

// openRoster opens the SQLite roster database at path.
func openRoster(path string) (ports.RelationalDB, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: path})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// withTreeHandler provides the TreeHandler, which works without a selected tree.
func withTreeHandler(fn func(*handlers.TreeHandler) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	return fn(handlers.NewTreeHandler(cwd, openRoster))
}
