package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePacks()
	c.normalizeScenes()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PacksDir) == "" {
		c.Paths.PacksDir = defaultPacksDir
	}
	if c.Paths.PacksDir, err = expandPath(c.Paths.PacksDir); err != nil {
		return fmt.Errorf("paths.packs_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePacks() {
	for i := range c.Packs {
		c.Packs[i].Name = strings.TrimSpace(c.Packs[i].Name)
		c.Packs[i].Label = strings.TrimSpace(c.Packs[i].Label)
		c.Packs[i].Kind = strings.ToLower(strings.TrimSpace(c.Packs[i].Kind))
		c.Packs[i].Source = strings.TrimSpace(c.Packs[i].Source)
		if c.Packs[i].Label == "" {
			c.Packs[i].Label = c.Packs[i].Name
		}
	}
}

func (c *Config) normalizeScenes() {
	c.Scenes.Name = strings.TrimSpace(c.Scenes.Name)
	c.Scenes.Label = strings.TrimSpace(c.Scenes.Label)
	c.Scenes.SourceDir = strings.TrimSpace(c.Scenes.SourceDir)
	c.Scenes.Combined = strings.TrimSpace(c.Scenes.Combined)
	if c.Scenes.Name == "" {
		c.Scenes.Name = defaultScenesName
	}
	if c.Scenes.Label == "" {
		c.Scenes.Label = defaultScenesLabel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
