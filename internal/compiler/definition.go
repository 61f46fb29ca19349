package compiler

import (
	"fmt"

	"bindery/internal/config"
	"bindery/internal/record"
)

// Definition describes one pack to compile. Exactly one of Source or
// SourceDir is set: single-file packs read one JSON array, merged packs read
// every JSON file in a directory except the excluded one.
type Definition struct {
	Name      string
	Label     string
	Kind      record.Kind
	Source    string
	SourceDir string
	Exclude   string // file name inside SourceDir to skip
}

// Merged reports whether this definition compiles from a source directory.
func (d Definition) Merged() bool { return d.SourceDir != "" }

// DefinitionsFromConfig resolves the configured packs into build definitions:
// single-file packs in configured order, then the merged scene pack.
func DefinitionsFromConfig(cfg *config.Config) ([]Definition, error) {
	defs := make([]Definition, 0, len(cfg.Packs)+1)
	for _, pack := range cfg.Packs {
		kind, err := record.ParseKind(pack.Kind)
		if err != nil {
			return nil, fmt.Errorf("pack %q: %w", pack.Name, err)
		}
		defs = append(defs, Definition{
			Name:   pack.Name,
			Label:  pack.Label,
			Kind:   kind,
			Source: cfg.SourcePath(pack.Source),
		})
	}
	defs = append(defs, Definition{
		Name:      cfg.Scenes.Name,
		Label:     cfg.Scenes.Label,
		Kind:      record.KindScene,
		SourceDir: cfg.SourcePath(cfg.Scenes.SourceDir),
		Exclude:   cfg.Scenes.Combined,
	})
	return defs, nil
}
