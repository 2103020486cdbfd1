package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorAuto)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("color: never\nverbose: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want %q", cfg.Color, ColorNever)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("verbose: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %q, want default %q", cfg.Color, ColorAuto)
	}
}

func TestLoad_MalformedFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("color: [broken\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load succeeded, want error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestLoad_RejectsUnknownColorMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("color: sometimes\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "sometimes") {
		t.Errorf("error = %v, want complaint about the color mode", err)
	}
}

func TestLoad_NoColorEnvWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("color: always\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color = %q, want %q under NO_COLOR", cfg.Color, ColorNever)
	}
}

func TestHome_EnvOverride(t *testing.T) {
	t.Setenv(HomeEnv, "/srv/tasks")

	if got := Home(); got != "/srv/tasks" {
		t.Errorf("Home = %q, want /srv/tasks", got)
	}
	if got := File(); got != filepath.Join("/srv/tasks", "config.yaml") {
		t.Errorf("File = %q, want config.yaml under the override", got)
	}
}

func TestHome_DefaultsUnderUserHome(t *testing.T) {
	t.Setenv(HomeEnv, "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no user home dir: %v", err)
	}
	if got := Home(); got != filepath.Join(home, ".trowel") {
		t.Errorf("Home = %q, want ~/.trowel", got)
	}
}
