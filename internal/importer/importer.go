package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"bindery/internal/compiler"
	"bindery/internal/config"
	"bindery/internal/logging"
	"bindery/internal/notifications"
	"bindery/internal/packstore"
	"bindery/internal/record"
)

const settingKeyPrefix = "bindery.imported."

// PackReport is the outcome of importing one pack.
type PackReport struct {
	Pack      string
	Label     string
	Documents int
	FolderID  string
	Skipped   bool
	Err       error
}

// Summary aggregates one import run. Failures are reported here, not raised:
// the run always visits every pack.
type Summary struct {
	Reports   []PackReport
	Documents int
	Imported  int
	Failed    int
	Skipped   int
}

// Importer orchestrates copying built packs into the host world.
type Importer struct {
	cfg      *config.Config
	logger   *slog.Logger
	host     Host
	notifier notifications.Service
}

// New constructs an importer with default dependencies.
func New(cfg *config.Config, logger *slog.Logger, host Host) *Importer {
	return NewWithDependencies(cfg, logger, host, notifications.NewService(cfg))
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, host Host, notifier notifications.Service) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{
		cfg:      cfg,
		logger:   logger.With(logging.String("component", "importer")),
		host:     host,
		notifier: notifier,
	}
}

// ImportAll copies every built pack into the world, organizing each pack's
// documents into a folder named after the pack. Packs flagged as already
// imported are skipped unless the operator confirms a re-run.
func (i *Importer) ImportAll(ctx context.Context) (Summary, error) {
	return i.run(ctx, false)
}

// Reimport overwrites previous imports: for each pack it deletes world
// documents whose ids match the pack's index, then recreates them.
func (i *Importer) Reimport(ctx context.Context) (Summary, error) {
	return i.run(ctx, true)
}

// Organize ensures the folder tree alone: one root folder per configured
// pack, found or created, without touching documents. Safe to re-run.
func (i *Importer) Organize(ctx context.Context) (Summary, error) {
	defs, err := compiler.DefinitionsFromConfig(i.cfg)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, def := range defs {
		report := PackReport{Pack: def.Name, Label: def.Label}
		report.FolderID, report.Err = i.ensureFolder(ctx, def)
		if report.Err != nil {
			summary.Failed++
			i.logger.Error("folder organize failed",
				logging.String("pack", def.Name),
				logging.Error(report.Err),
			)
		} else {
			summary.Imported++
		}
		summary.Reports = append(summary.Reports, report)
	}
	return summary, nil
}

func (i *Importer) run(ctx context.Context, overwrite bool) (Summary, error) {
	defs, err := compiler.DefinitionsFromConfig(i.cfg)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, def := range defs {
		report := i.importPack(ctx, def, overwrite)
		switch {
		case report.Err != nil:
			summary.Failed++
			i.logger.Error("pack import failed",
				logging.String("pack", def.Name),
				logging.Error(report.Err),
			)
		case report.Skipped:
			summary.Skipped++
		default:
			summary.Imported++
			summary.Documents += report.Documents
		}
		summary.Reports = append(summary.Reports, report)
	}

	i.notifyRun(ctx, summary)
	i.logger.Info("import finished",
		logging.Int("imported", summary.Imported),
		logging.Int("documents", summary.Documents),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (i *Importer) importPack(ctx context.Context, def compiler.Definition, overwrite bool) PackReport {
	report := PackReport{Pack: def.Name, Label: def.Label}

	if !overwrite {
		skip, err := i.alreadyImported(ctx, def)
		if err != nil {
			report.Err = err
			return report
		}
		if skip {
			report.Skipped = true
			return report
		}
	}

	store, err := packstore.Open(i.cfg.PackPath(def.Name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("pack not built, skipping import", logging.String("pack", def.Name))
			report.Skipped = true
			return report
		}
		report.Err = fmt.Errorf("pack %s: %w", def.Name, err)
		return report
	}
	defer store.Close()

	docs, err := assemblePack(store, def.Kind)
	if err != nil {
		report.Err = fmt.Errorf("pack %s: %w", def.Name, err)
		return report
	}
	if len(docs) == 0 {
		report.Skipped = true
		return report
	}

	if overwrite {
		if err := i.deleteMatching(ctx, def, docs); err != nil {
			report.Err = fmt.Errorf("pack %s: %w", def.Name, err)
			return report
		}
	}

	folderID, err := i.ensureFolder(ctx, def)
	if err != nil {
		report.Err = fmt.Errorf("pack %s: %w", def.Name, err)
		return report
	}
	for _, doc := range docs {
		doc["folder"] = folderID
	}

	if err := i.host.Documents.CreateDocuments(ctx, def.Kind, docs); err != nil {
		report.Err = fmt.Errorf("pack %s: create documents: %w", def.Name, err)
		return report
	}

	if err := i.host.Settings.Set(ctx, settingKeyPrefix+def.Name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		report.Err = fmt.Errorf("pack %s: record import flag: %w", def.Name, err)
		return report
	}

	report.Documents = len(docs)
	report.FolderID = folderID
	return report
}

func (i *Importer) alreadyImported(ctx context.Context, def compiler.Definition) (bool, error) {
	_, found, err := i.host.Settings.Get(ctx, settingKeyPrefix+def.Name)
	if err != nil {
		return false, fmt.Errorf("pack %s: read import flag: %w", def.Name, err)
	}
	if !found {
		return false, nil
	}
	if i.host.Confirm == nil {
		return true, nil
	}
	prompt := fmt.Sprintf("%s was already imported. Import it again?", def.Label)
	return !i.host.Confirm(prompt), nil
}

// deleteMatching removes world documents whose ids appear in the pack's
// index. World documents the pack never produced are left alone.
func (i *Importer) deleteMatching(ctx context.Context, def compiler.Definition, docs []Document) error {
	worldIDs, err := i.host.Documents.ListDocumentIDs(ctx, def.Kind)
	if err != nil {
		return fmt.Errorf("list world documents: %w", err)
	}
	inWorld := make(map[string]struct{}, len(worldIDs))
	for _, id := range worldIDs {
		inWorld[id] = struct{}{}
	}

	var doomed []string
	for _, doc := range docs {
		id, _ := doc[record.FieldID].(string)
		if id == "" {
			continue
		}
		if _, ok := inWorld[id]; ok {
			doomed = append(doomed, id)
		}
	}
	if len(doomed) == 0 {
		return nil
	}
	if err := i.host.Documents.DeleteDocuments(ctx, def.Kind, doomed); err != nil {
		return fmt.Errorf("delete world documents: %w", err)
	}
	return nil
}

func (i *Importer) ensureFolder(ctx context.Context, def compiler.Definition) (string, error) {
	id, found, err := i.host.Folders.FindFolder(ctx, def.Kind, def.Label, "")
	if err != nil {
		return "", fmt.Errorf("find folder %q: %w", def.Label, err)
	}
	if found {
		return id, nil
	}
	id, err = i.host.Folders.CreateFolder(ctx, def.Kind, def.Label, "")
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", def.Label, err)
	}
	return id, nil
}

func (i *Importer) notifyRun(ctx context.Context, summary Summary) {
	if i.notifier == nil {
		return
	}

	if summary.Failed > 0 {
		var names []string
		for _, report := range summary.Reports {
			if report.Err != nil {
				names = append(names, report.Pack)
			}
		}
		if err := i.notifier.Publish(ctx, notifications.EventImportFailed, notifications.Payload{
			"failed": strings.Join(names, ", "),
		}); err != nil {
			i.logger.Warn("publish import notification", logging.Error(err))
		}
		return
	}
	if summary.Imported == 0 {
		return
	}
	if err := i.notifier.Publish(ctx, notifications.EventImportCompleted, notifications.Payload{
		"documents": strconv.Itoa(summary.Documents),
		"packs":     strconv.Itoa(summary.Imported),
	}); err != nil {
		i.logger.Warn("publish import notification", logging.Error(err))
	}
}
