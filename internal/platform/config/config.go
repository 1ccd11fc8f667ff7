package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://shiftware.digital/api/v1"

// fileConfig is the YAML shape of <state-dir>/config.yaml. Every field is
// optional; zero values fall back to defaults.
type fileConfig struct {
	BaseURL       string `yaml:"base_url"`
	TimeoutSecs   int    `yaml:"timeout_seconds"`
	ShiftTimezone string `yaml:"shift_timezone"`
	LogLevel      string `yaml:"log_level"`
}

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	ShiftTimezone *time.Location
	LogLevel      string
	StateDir      string
	DBPath        string
	VaultPath     string
	VaultKeyPath  string
}

// New resolves configuration with precedence: environment > YAML file >
// defaults. stateDir == "" means the platform user config dir.
func New(stateDir string) (Config, error) {
	if stateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		stateDir = filepath.Join(base, "shiftware")
	}

	fc := fileConfig{}
	raw, err := os.ReadFile(filepath.Join(stateDir, "config.yaml"))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config.yaml: %w", err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}

	cfg := Config{
		BaseURL:      defaultBaseURL,
		Timeout:      10 * time.Second,
		LogLevel:     "info",
		StateDir:     stateDir,
		DBPath:       filepath.Join(stateDir, "cache.db"),
		VaultPath:    filepath.Join(stateDir, "session.vault"),
		VaultKeyPath: filepath.Join(stateDir, "vault.key"),
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.TimeoutSecs > 0 {
		cfg.Timeout = time.Duration(fc.TimeoutSecs) * time.Second
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if v := os.Getenv("SHIFTWARE_API_BASE"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SHIFTWARE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	tz := fc.ShiftTimezone
	if v := os.Getenv("SHIFTWARE_TZ"); v != "" {
		tz = v
	}
	if tz == "" {
		cfg.ShiftTimezone = time.UTC
	} else {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("load shift timezone %q: %w", tz, err)
		}
		cfg.ShiftTimezone = loc
	}

	return cfg, nil
}
