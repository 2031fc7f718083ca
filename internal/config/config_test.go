package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("COSOFT_API_BASE_URL", "")
	t.Setenv("COSOFT_SPACE_ID", "")
	t.Setenv("COSOFT_CATEGORY_ID", "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.SpaceID != defaultSpaceID {
		t.Fatalf("SpaceID = %q, want %q", cfg.SpaceID, defaultSpaceID)
	}
	wantAuth, err := expandPath(defaultAuthPath)
	if err != nil {
		t.Fatalf("expandPath(defaultAuthPath) returned error: %v", err)
	}
	if cfg.AuthPath != wantAuth {
		t.Fatalf("AuthPath = %q, want %q", cfg.AuthPath, wantAuth)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("COSOFT_API_BASE_URL", "")
	t.Setenv("COSOFT_SPACE_ID", "")
	t.Setenv("COSOFT_CATEGORY_ID", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  https://spaces.example.com/  "
space_id = "  space-1  "
category_id = "cat-1"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://spaces.example.com" {
		t.Fatalf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.SpaceID != "space-1" {
		t.Fatalf("SpaceID = %q, want %q", cfg.SpaceID, "space-1")
	}
	if cfg.CategoryID != "cat-1" {
		t.Fatalf("CategoryID = %q, want %q", cfg.CategoryID, "cat-1")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`base_url = "https://file.example.com"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("COSOFT_API_BASE_URL", "https://env.example.com")
	t.Setenv("COSOFT_SPACE_ID", "env-space")
	t.Setenv("COSOFT_CATEGORY_ID", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Fatalf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.SpaceID != "env-space" {
		t.Fatalf("SpaceID = %q, want env override", cfg.SpaceID)
	}
	if cfg.CategoryID != defaultCategoryID {
		t.Fatalf("CategoryID = %q, want default kept", cfg.CategoryID)
	}
}
