package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bindery/internal/config"
	"bindery/internal/history"
	"bindery/internal/logging"
	"bindery/internal/notifications"
	"bindery/internal/packstore"
	"bindery/internal/record"
)

// Compiler builds compendium packs from JSON sources.
type Compiler struct {
	cfg      *config.Config
	logger   *slog.Logger
	notifier notifications.Service
	history  *history.Store

	newID func() string
	now   func() time.Time
}

// New constructs a compiler with default dependencies.
func New(cfg *config.Config, logger *slog.Logger) *Compiler {
	return NewWithDependencies(cfg, logger, notifications.NewService(cfg), nil)
}

// NewWithDependencies allows injecting collaborators (used in tests). A nil
// history store disables run recording.
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, notifier notifications.Service, hist *history.Store) *Compiler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Compiler{
		cfg:      cfg,
		logger:   logger.With(logging.String("component", "compiler")),
		notifier: notifier,
		history:  hist,
	}
}

func (c *Compiler) provenance() record.Provenance {
	return record.Provenance{
		HostVersion:   c.cfg.Provenance.HostVersion,
		SystemID:      c.cfg.Provenance.SystemID,
		SystemVersion: c.cfg.Provenance.SystemVersion,
		Author:        c.cfg.Provenance.Author,
	}
}

// BuildPack compiles one single-file pack and returns the number of top-level
// records written. A missing source file is a soft skip: zero count, nil
// error.
func (c *Compiler) BuildPack(ctx context.Context, def Definition) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	docs, found, err := loadArray(def.Source)
	if err != nil {
		return 0, fmt.Errorf("pack %s: %w", def.Name, err)
	}
	if !found {
		c.logger.Warn("source missing, pack skipped",
			logging.String("pack", def.Name),
			logging.String("source", def.Source),
		)
		return 0, nil
	}

	entries, err := c.normalizeAll(def, docs)
	if err != nil {
		return 0, fmt.Errorf("pack %s: %w", def.Name, err)
	}
	if err := c.writePack(def, entries); err != nil {
		return 0, fmt.Errorf("pack %s: %w", def.Name, err)
	}

	c.logger.Info("pack built",
		logging.String("pack", def.Name),
		logging.Int("records", len(docs)),
		logging.Int("entries", len(entries)),
	)
	return len(docs), nil
}

// BuildMergedPack compiles one pack from every JSON file in the definition's
// source directory, skipping the excluded combined file so its records are
// not processed twice. A missing directory is a soft skip.
func (c *Compiler) BuildMergedPack(ctx context.Context, def Definition) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dirEntries, err := os.ReadDir(def.SourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("source directory missing, pack skipped",
				logging.String("pack", def.Name),
				logging.String("source_dir", def.SourceDir),
			)
			return 0, nil
		}
		return 0, fmt.Errorf("pack %s: read source directory: %w", def.Name, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if def.Exclude != "" && entry.Name() == def.Exclude {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var docs []map[string]any
	for _, name := range names {
		path := filepath.Join(def.SourceDir, name)
		fileDocs, _, err := loadArray(path)
		if err != nil {
			return 0, fmt.Errorf("pack %s: %w", def.Name, err)
		}
		for _, doc := range fileDocs {
			if _, named := doc["name"].(string); !named {
				doc["name"] = displayNameFromFile(name)
			}
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		c.logger.Warn("no source files, pack skipped", logging.String("pack", def.Name))
		return 0, nil
	}

	entries, err := c.normalizeAll(def, docs)
	if err != nil {
		return 0, fmt.Errorf("pack %s: %w", def.Name, err)
	}
	if err := c.writePack(def, entries); err != nil {
		return 0, fmt.Errorf("pack %s: %w", def.Name, err)
	}

	c.logger.Info("pack built",
		logging.String("pack", def.Name),
		logging.Int("files", len(names)),
		logging.Int("records", len(docs)),
		logging.Int("entries", len(entries)),
	)
	return len(docs), nil
}

func (c *Compiler) normalizeAll(def Definition, docs []map[string]any) ([]record.Entry, error) {
	normalizer := record.Normalizer{
		Kind:       def.Kind,
		Provenance: c.provenance(),
		NewID:      c.newID,
		Now:        c.now,
	}

	var entries []record.Entry
	seen := make(map[string]struct{})
	for i, doc := range docs {
		recordEntries, err := normalizer.Normalize(doc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		for _, entry := range recordEntries {
			if _, dup := seen[entry.Key]; dup {
				return nil, fmt.Errorf("record %d: duplicate storage key %q", i, entry.Key)
			}
			seen[entry.Key] = struct{}{}
		}
		entries = append(entries, recordEntries...)
	}
	return entries, nil
}

// writePack commits entries into a freshly recreated store. The store handle
// is released on success and failure alike.
func (c *Compiler) writePack(def Definition, entries []record.Entry) (err error) {
	store, err := packstore.Create(c.cfg.PackPath(def.Name))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close pack store: %w", closeErr)
		}
	}()

	return store.WriteBatch(entries)
}

// loadArray reads a JSON array of objects. found is false when the file does
// not exist.
func loadArray(path string) (docs []map[string]any, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read source %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, false, fmt.Errorf("parse source %q: %w", path, err)
	}
	return docs, true, nil
}
