//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// inTempDir runs the test from an empty directory with an empty home, so no
// user config leaks into Load.
func inTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)
	return tmpDir
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile("config.toml", []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music.db", filepath.Join(home, "music.db")},
		{"tilde with nested path", "~/data/mcotp/catalog.db", filepath.Join(home, "data", "mcotp", "catalog.db")},
		{"absolute path unchanged", "/var/lib/mcotp/catalog.db", "/var/lib/mcotp/catalog.db"},
		{"relative path unchanged", "data/catalog.db", "data/catalog.db"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "mcotp", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestGetQueueConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	q := cfg.GetQueueConfig()

	if q.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", q.BatchSize)
	}
	if q.BlockSize != 5 {
		t.Errorf("BlockSize = %d, want 5", q.BlockSize)
	}
	if q.BlockAttempts != 5 {
		t.Errorf("BlockAttempts = %d, want 5", q.BlockAttempts)
	}
	if q.Upcoming != 5 {
		t.Errorf("Upcoming = %d, want 5", q.Upcoming)
	}
}

func TestGetQueueConfig_BatchSizeBounds(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"lower bound", 1, 1},
		{"upper bound", 100, 100},
		{"zero becomes default", 0, 10},
		{"negative becomes default", -3, 10},
		{"above upper bound becomes default", 101, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Queue: QueueConfig{BatchSize: tt.size}}
			if got := cfg.GetQueueConfig().BatchSize; got != tt.expected {
				t.Errorf("BatchSize(%d) = %d, want %d", tt.size, got, tt.expected)
			}
		})
	}
}

func TestBatchOptions(t *testing.T) {
	cfg := &Config{Queue: QueueConfig{BatchSize: 20, BlockSize: 3, Upcoming: 8}}
	opts := cfg.BatchOptions()

	if opts.BatchSize != 20 {
		t.Errorf("BatchSize = %d, want 20", opts.BatchSize)
	}
	if opts.BlockSize != 3 {
		t.Errorf("BlockSize = %d, want 3", opts.BlockSize)
	}
	if opts.BlockAttempts != 5 {
		t.Errorf("BlockAttempts = %d, want 5", opts.BlockAttempts)
	}
}

func TestLoad_NoConfig(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	wantCatalog := filepath.Join(xdg.DataHome, "mcotp", "catalog.db")
	if cfg.CatalogDB != wantCatalog {
		t.Errorf("CatalogDB = %q, want %q", cfg.CatalogDB, wantCatalog)
	}
	wantState := filepath.Join(xdg.DataHome, "mcotp", "state.db")
	if cfg.StateDB != wantState {
		t.Errorf("StateDB = %q, want %q", cfg.StateDB, wantState)
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	inTempDir(t)
	writeConfig(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	home := inTempDir(t)
	writeConfig(t, `
catalog_db = "/srv/music/catalog.db"
state_db = "~/state/queue.db"
log_level = " DEBUG "

[queue]
batch_size = 25
block_size = 4
block_attempts = 7
upcoming = 3
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CatalogDB != "/srv/music/catalog.db" {
		t.Errorf("CatalogDB = %q, want %q", cfg.CatalogDB, "/srv/music/catalog.db")
	}
	if want := filepath.Join(home, "state", "queue.db"); cfg.StateDB != want {
		t.Errorf("StateDB = %q, want %q", cfg.StateDB, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}

	q := cfg.GetQueueConfig()
	if q.BatchSize != 25 || q.BlockSize != 4 || q.BlockAttempts != 7 || q.Upcoming != 3 {
		t.Errorf("Queue = %+v, want {25 4 7 3}", q)
	}
}

func TestLoad_LocalOverridesHome(t *testing.T) {
	home := inTempDir(t)

	userDir := filepath.Join(home, ".config", "mcotp")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatalf("could not create config dir: %v", err)
	}
	userConfig := "log_level = \"warn\"\n\n[queue]\nbatch_size = 30\n"
	if err := os.WriteFile(filepath.Join(userDir, "config.toml"), []byte(userConfig), 0o600); err != nil {
		t.Fatalf("could not write user config: %v", err)
	}
	writeConfig(t, "[queue]\nbatch_size = 12\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.Queue.BatchSize != 12 {
		t.Errorf("Queue.BatchSize = %d, want 12", cfg.Queue.BatchSize)
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	inTempDir(t)
	writeConfig(t, "invalid = [[[")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}
