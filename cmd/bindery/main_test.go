package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()

	content := fmt.Sprintf(`
[paths]
data_dir = %q
packs_dir = %q
log_dir = %q

[[packs]]
name = "npcs"
label = "NPCs"
kind = "actor"
source = "actors/npcs.json"

[scenes]
source_dir = "scenes"
combined = "scenes.json"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "packs"),
		filepath.Join(base, "logs"),
	)

	path := filepath.Join(base, "bindery.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func writeTestSource(t *testing.T, base, rel string, docs []map[string]any) {
	t.Helper()

	path := filepath.Join(base, "data", rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	data, err := json.Marshal(docs)
	if err != nil {
		t.Fatalf("marshal source: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
}

func TestBuildCommandReportsPerPackProgress(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)
	writeTestSource(t, base, "actors/npcs.json", []map[string]any{
		{"name": "Grendel"},
	})

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"build", "--config", cfgPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("build command failed: %v\noutput: %s", err, out.String())
	}

	output := out.String()
	for _, want := range []string{"built: npcs: 1 entries", "skipped: scenes", "total: 1 entries"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestConfigPathCommandSkipsConfigLoad(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "path"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.Contains(out.String(), "config.toml") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
