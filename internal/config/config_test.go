package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"sift/internal/config"
	"sift/internal/item"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("SIFT_DEFAULT_COMMAND", "")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(tempHome); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

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
	if cfg.Finder.Command != "find ." {
		t.Fatalf("unexpected default command: %q", cfg.Finder.Command)
	}
	if cfg.Finder.Shell != "sh" {
		t.Fatalf("unexpected default shell: %q", cfg.Finder.Shell)
	}
	if cfg.Finder.ReserveLines != 0 {
		t.Fatalf("unexpected default reserve lines: %d", cfg.Finder.ReserveLines)
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "sift", "history.db")
	if cfg.History.Path != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, wantHistory)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadHonoursDefaultCommandEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SIFT_DEFAULT_COMMAND", "rg --files")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Finder.Command != "rg --files" {
		t.Fatalf("expected command from env, got %q", cfg.Finder.Command)
	}
}

func TestLoadParsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.toml")
	content := `
[finder]
command = "git ls-files"
reserve_lines = 2

[ranking]
tiebreak = ["-score", "length"]

[history]
enabled = false

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v resolved=%q", exists, resolved)
	}
	if cfg.Finder.Command != "git ls-files" {
		t.Fatalf("unexpected command: %q", cfg.Finder.Command)
	}
	if cfg.Finder.ReserveLines != 2 {
		t.Fatalf("unexpected reserve lines: %d", cfg.Finder.ReserveLines)
	}
	criteria := cfg.Criteria()
	if len(criteria) != 2 || criteria[0] != item.ByNegScore || criteria[1] != item.ByLength {
		t.Fatalf("unexpected criteria: %v", criteria)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadTiebreak(t *testing.T) {
	cfg := config.Default()
	cfg.Ranking.Tiebreak = []string{"score", "reverse"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown tiebreak token")
	}
}

func TestValidateRejectsNegativeReserveLines(t *testing.T) {
	cfg := config.Default()
	cfg.Finder.ReserveLines = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative reserve_lines")
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("sample config is empty")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}
