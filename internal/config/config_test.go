package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RepoPath != "" {
		t.Errorf("RepoPath = %q, want empty", cfg.RepoPath)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
	if cfg.MaxLogEntries != 200 {
		t.Errorf("MaxLogEntries = %d, want 200", cfg.MaxLogEntries)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.RepoPath = "/home/user/dotfiles"
	cfg.RemoteURL = "git@example.com:user/dotfiles.git"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(Directory(), "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.RepoPath != cfg.RepoPath {
		t.Errorf("RepoPath = %q, want %q", got.RepoPath, cfg.RepoPath)
	}
	if got.RemoteURL != cfg.RemoteURL {
		t.Errorf("RemoteURL = %q, want %q", got.RemoteURL, cfg.RemoteURL)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DOTATUI_THEME", "light")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}
}
