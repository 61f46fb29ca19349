package config

import (
	"fmt"

	"bindery/internal/record"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProvenance(); err != nil {
		return err
	}
	if err := c.validatePacks(); err != nil {
		return err
	}
	if err := c.validateScenes(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProvenance() error {
	if c.Provenance.SystemID == "" {
		return fmt.Errorf("provenance.system_id is required")
	}
	if c.Provenance.HostVersion == "" {
		return fmt.Errorf("provenance.host_version is required")
	}
	return nil
}

func (c *Config) validatePacks() error {
	seen := make(map[string]struct{}, len(c.Packs)+1)
	for _, pack := range c.Packs {
		if pack.Name == "" {
			return fmt.Errorf("packs: every pack needs a name")
		}
		if _, dup := seen[pack.Name]; dup {
			return fmt.Errorf("packs: duplicate pack name %q", pack.Name)
		}
		seen[pack.Name] = struct{}{}
		if pack.Source == "" {
			return fmt.Errorf("packs: pack %q needs a source file", pack.Name)
		}
		if _, err := record.ParseKind(pack.Kind); err != nil {
			return fmt.Errorf("packs: pack %q: %w", pack.Name, err)
		}
	}
	if _, dup := seen[c.Scenes.Name]; dup {
		return fmt.Errorf("scenes: pack name %q collides with a configured pack", c.Scenes.Name)
	}
	return nil
}

func (c *Config) validateScenes() error {
	if c.Scenes.SourceDir == "" {
		return fmt.Errorf("scenes.source_dir is required")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
