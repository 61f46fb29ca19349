package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"bindery/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "bindery", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("expected absolute data dir, got %q", cfg.Paths.DataDir)
	}
	if !filepath.IsAbs(cfg.Paths.PacksDir) {
		t.Fatalf("expected absolute packs dir, got %q", cfg.Paths.PacksDir)
	}
	if cfg.Provenance.SystemID != "dh2e" {
		t.Fatalf("unexpected default system id: %q", cfg.Provenance.SystemID)
	}
	if len(cfg.Packs) == 0 {
		t.Fatal("expected default pack list")
	}
	if cfg.Scenes.Name != "scenes" {
		t.Fatalf("unexpected default scenes pack name: %q", cfg.Scenes.Name)
	}
	if cfg.Scenes.Combined != "scenes.json" {
		t.Fatalf("unexpected default combined file: %q", cfg.Scenes.Combined)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}

	// EnsureDirectories needs writable dirs; point them at the temp home.
	cfg.Paths.PacksDir = filepath.Join(tempHome, "packs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.PacksDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bindery.toml")

	type payload struct {
		Paths struct {
			DataDir  string `toml:"data_dir"`
			PacksDir string `toml:"packs_dir"`
		} `toml:"paths"`
		Provenance struct {
			Author string `toml:"author"`
		} `toml:"provenance"`
		Packs []map[string]string `toml:"packs"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "campaign")
	custom.Paths.PacksDir = filepath.Join(tempDir, "out")
	custom.Provenance.Author = "gm"
	custom.Packs = []map[string]string{
		{"name": "bestiary", "kind": "Actor", "source": "bestiary.json"},
	}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != custom.Paths.DataDir {
		t.Fatalf("expected data dir override, got %q", cfg.Paths.DataDir)
	}
	if cfg.Provenance.Author != "gm" {
		t.Fatalf("expected author override, got %q", cfg.Provenance.Author)
	}
	if len(cfg.Packs) != 1 {
		t.Fatalf("expected configured packs to replace defaults, got %d", len(cfg.Packs))
	}
	if cfg.Packs[0].Kind != "actor" {
		t.Fatalf("expected kind normalized to lower case, got %q", cfg.Packs[0].Kind)
	}
	if cfg.Packs[0].Label != "bestiary" {
		t.Fatalf("expected label to default to pack name, got %q", cfg.Packs[0].Label)
	}
	if got := cfg.SourcePath(cfg.Packs[0].Source); got != filepath.Join(custom.Paths.DataDir, "bestiary.json") {
		t.Fatalf("unexpected source path: %q", got)
	}
	if got := cfg.PackPath("bestiary"); got != filepath.Join(custom.Paths.PacksDir, "bestiary.db") {
		t.Fatalf("unexpected pack path: %q", got)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{
			name:    "duplicate pack name",
			mutate:  func(cfg *config.Config) { cfg.Packs[1].Name = cfg.Packs[0].Name },
			wantErr: "duplicate pack name",
		},
		{
			name:    "scenes collides with pack",
			mutate:  func(cfg *config.Config) { cfg.Scenes.Name = cfg.Packs[0].Name },
			wantErr: "collides",
		},
		{
			name:    "unknown kind",
			mutate:  func(cfg *config.Config) { cfg.Packs[0].Kind = "macro" },
			wantErr: "macro",
		},
		{
			name:    "missing system id",
			mutate:  func(cfg *config.Config) { cfg.Provenance.SystemID = "" },
			wantErr: "system_id",
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *config.Config) { cfg.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bindery.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config failed validation: %v", err)
	}
}
