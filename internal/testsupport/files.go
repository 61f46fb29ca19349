package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bindery/internal/config"
)

// WriteSource marshals docs as a JSON array into rel under the config's data
// directory and returns the absolute path.
func WriteSource(t testing.TB, cfg *config.Config, rel string, docs []map[string]any) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.DataDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create source directory: %v", err)
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		t.Fatalf("marshal source fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write source fixture: %v", err)
	}
	return path
}

// WriteRaw writes raw bytes to rel under the config's data directory.
func WriteRaw(t testing.TB, cfg *config.Config, rel string, data []byte) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.DataDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create source directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write source fixture: %v", err)
	}
	return path
}
