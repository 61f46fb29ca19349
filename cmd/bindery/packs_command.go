package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"bindery/internal/compiler"
	"bindery/internal/packstore"
)

func newPacksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List configured packs and their build state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			defs, err := compiler.DefinitionsFromConfig(cfg)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(defs))
			for _, def := range defs {
				source := def.Source
				if def.Merged() {
					source = def.SourceDir + string(os.PathSeparator) + "*.json"
				}
				rows = append(rows, []string{
					def.Name,
					def.Label,
					def.Kind.String(),
					source,
					packEntryCount(cfg.PackPath(def.Name)),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Pack", "Label", "Kind", "Source", "Entries"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

// packEntryCount reads a built pack's entry count, or "-" when the pack has
// not been built yet.
func packEntryCount(path string) string {
	store, err := packstore.Open(path)
	if err != nil {
		return "-"
	}
	defer store.Close()

	n, err := store.Len()
	if err != nil {
		return "-"
	}
	return strconv.Itoa(n)
}
