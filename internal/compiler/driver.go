package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bindery/internal/history"
	"bindery/internal/logging"
	"bindery/internal/notifications"
)

// Outcome is the result of one pack inside a run.
type Outcome struct {
	Definition Definition
	Entries    int
	Skipped    bool
	Err        error
}

// Summary describes one full build across all configured packs.
type Summary struct {
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	Outcomes     []Outcome
	TotalEntries int
}

// Failed returns the outcomes that ended in error.
func (s Summary) Failed() []Outcome {
	var failed []Outcome
	for _, outcome := range s.Outcomes {
		if outcome.Err != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// BuildAll compiles every configured pack sequentially. A failing pack is
// logged and reported in the summary without stopping the remaining packs;
// BuildAll itself errors only on faults outside pack scope (configuration,
// lock acquisition, context cancellation).
func (c *Compiler) BuildAll(ctx context.Context) (Summary, error) {
	defs, err := DefinitionsFromConfig(c.cfg)
	if err != nil {
		return Summary{}, err
	}
	if err := c.cfg.EnsureDirectories(); err != nil {
		return Summary{}, err
	}

	// The compiler owns the pack directory for the duration of a build.
	lock := flock.New(filepath.Join(c.cfg.Paths.PacksDir, ".bindery.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("another build holds the lock at %s", lock.Path())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	summary := Summary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	logger := c.logger.With(logging.String("run_id", summary.RunID))
	logger.Info("build started", logging.Int("packs", len(defs)))

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var count int
		if def.Merged() {
			count, err = c.BuildMergedPack(ctx, def)
		} else {
			count, err = c.BuildPack(ctx, def)
		}

		outcome := Outcome{Definition: def, Entries: count, Err: err}
		if err != nil {
			logger.Error("pack build failed",
				logging.String("pack", def.Name),
				logging.Error(err),
			)
		} else if count == 0 {
			outcome.Skipped = true
		} else {
			summary.TotalEntries += count
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	summary.FinishedAt = time.Now()

	c.recordRun(ctx, summary)
	c.notifyRun(ctx, summary)

	logger.Info("build finished",
		logging.Int("total_entries", summary.TotalEntries),
		logging.Int("failed_packs", len(summary.Failed())),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func (c *Compiler) recordRun(ctx context.Context, summary Summary) {
	if c.history == nil {
		return
	}

	run := history.Run{
		ID:           summary.RunID,
		StartedAt:    summary.StartedAt,
		FinishedAt:   summary.FinishedAt,
		TotalEntries: summary.TotalEntries,
	}
	results := make([]history.PackResult, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		result := history.PackResult{
			RunID:   summary.RunID,
			Pack:    outcome.Definition.Name,
			Label:   outcome.Definition.Label,
			Entries: outcome.Entries,
		}
		switch {
		case outcome.Err != nil:
			result.Status = history.StatusFailed
			result.Error = outcome.Err.Error()
			run.PacksFailed++
		case outcome.Skipped:
			result.Status = history.StatusSkipped
			run.PacksSkipped++
		default:
			result.Status = history.StatusBuilt
			run.PacksBuilt++
		}
		results = append(results, result)
	}

	if err := c.history.RecordRun(ctx, run, results); err != nil {
		c.logger.Warn("record build history", logging.Error(err))
	}
}

func (c *Compiler) notifyRun(ctx context.Context, summary Summary) {
	if c.notifier == nil {
		return
	}

	failed := summary.Failed()
	if len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, outcome := range failed {
			names = append(names, outcome.Definition.Name)
		}
		if err := c.notifier.Publish(ctx, notifications.EventBuildFailed, notifications.Payload{
			"failed": strings.Join(names, ", "),
		}); err != nil {
			c.logger.Warn("publish build notification", logging.Error(err))
		}
		return
	}

	built := 0
	for _, outcome := range summary.Outcomes {
		if !outcome.Skipped && outcome.Err == nil {
			built++
		}
	}
	if err := c.notifier.Publish(ctx, notifications.EventBuildCompleted, notifications.Payload{
		"packs":   strconv.Itoa(built),
		"entries": strconv.Itoa(summary.TotalEntries),
	}); err != nil {
		c.logger.Warn("publish build notification", logging.Error(err))
	}
}
