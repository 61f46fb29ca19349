package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/compiler"
	"bindery/internal/history"
	"bindery/internal/logging"
	"bindery/internal/notifications"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build every configured compendium pack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			hist, err := history.Open(cfg)
			if err != nil {
				// History is bookkeeping; a broken history DB must not block builds.
				logger.Warn("open build history", logging.Error(err))
				hist = nil
			}
			defer func() {
				_ = hist.Close()
			}()

			c := compiler.NewWithDependencies(cfg, logger, notifications.NewService(cfg), hist)
			summary, err := c.BuildAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, outcome := range summary.Outcomes {
				switch {
				case outcome.Err != nil:
					fmt.Fprintf(out, "failed: %s: %v\n", outcome.Definition.Name, outcome.Err)
				case outcome.Skipped:
					fmt.Fprintf(out, "skipped: %s\n", outcome.Definition.Name)
				default:
					fmt.Fprintf(out, "built: %s: %d entries\n", outcome.Definition.Name, outcome.Entries)
				}
			}
			fmt.Fprintf(out, "total: %d entries\n", summary.TotalEntries)

			if failed := summary.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d packs failed", len(failed), len(summary.Outcomes))
			}
			return nil
		},
	}
}
