package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields cowork needs to talk to a CoSoft instance.
type Config struct {
	BaseURL    string
	SpaceID    string
	CategoryID string
	AuthPath   string
	DebugLog   string
}

const (
	defaultConfigPath = "~/.config/cowork/config.toml"
	defaultAuthPath   = "~/.config/cowork/auth.json"
	defaultDebugLog   = "~/.local/state/cowork/debug.log"

	// Defaults point at the Hub612 instance the CLI was written for.
	defaultBaseURL    = "https://hub612.cosoft.fr"
	defaultSpaceID    = "a4928a70-38c1-42b9-96f9-b2dd00db5b02"
	defaultCategoryID = "7f1e5757-b9b9-4530-84ad-b2dd00db5f0f"
)

// Load locates and parses the cowork config, falling back to defaults when
// missing. Environment variables (COSOFT_API_BASE_URL, COSOFT_SPACE_ID,
// COSOFT_CATEGORY_ID) override file values; a .env file in the working
// directory is honored when present.
func Load(path string) (Config, error) {
	// Best effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:    defaultBaseURL,
		SpaceID:    defaultSpaceID,
		CategoryID: defaultCategoryID,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return finalize(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL    string `toml:"base_url"`
		SpaceID    string `toml:"space_id"`
		CategoryID string `toml:"category_id"`
		AuthPath   string `toml:"auth_path"`
		DebugLog   string `toml:"debug_log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.SpaceID); v != "" {
		cfg.SpaceID = v
	}
	if v := strings.TrimSpace(raw.CategoryID); v != "" {
		cfg.CategoryID = v
	}
	if v := strings.TrimSpace(raw.AuthPath); v != "" {
		cfg.AuthPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.DebugLog); v != "" {
		cfg.DebugLog = mustExpand(v)
	}

	return finalize(cfg), nil
}

func finalize(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("COSOFT_API_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("COSOFT_SPACE_ID")); v != "" {
		cfg.SpaceID = v
	}
	if v := strings.TrimSpace(os.Getenv("COSOFT_CATEGORY_ID")); v != "" {
		cfg.CategoryID = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.AuthPath == "" {
		cfg.AuthPath = mustExpand(defaultAuthPath)
	}
	if cfg.DebugLog == "" {
		cfg.DebugLog = mustExpand(defaultDebugLog)
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
