// Package config loads tracksheet settings from defaults, an optional TOML
// file, a .env file and TRACKSHEET_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/alexanderramin/tracksheet/internal/theme"
)

const envPrefix = "TRACKSHEET_"

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Display  DisplayConfig  `toml:"display"`
	Autosave AutosaveConfig `toml:"autosave"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	LLM      LLMConfig      `toml:"llm"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type DisplayConfig struct {
	Theme string `toml:"theme"` // light | dark | blue-green
}

type AutosaveConfig struct {
	DelayMS int `toml:"delay_ms"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

type LLMConfig struct {
	Enabled    bool   `toml:"enabled"`
	LogCalls   bool   `toml:"log_calls"`
	Endpoint   string `toml:"endpoint"`
	Model      string `toml:"model"`
	TimeoutMS  int    `toml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries"`
}

// Default returns the built-in settings. The database lives under
// ~/.tracksheet unless the home directory is unknown.
func Default() Config {
	dbPath := filepath.Join(".tracksheet", "tracksheet.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".tracksheet", "tracksheet.db")
	}
	return Config{
		Database: DatabaseConfig{Path: dbPath},
		Display:  DisplayConfig{Theme: theme.DefaultKey},
		Autosave: AutosaveConfig{DelayMS: 500},
		Server:   ServerConfig{Addr: "127.0.0.1:8080"},
		Logging:  LoggingConfig{Level: "info"},
		LLM: LLMConfig{
			Enabled:    false,
			Endpoint:   "http://localhost:11434",
			Model:      "llama3.2",
			TimeoutMS:  10000,
			MaxRetries: 1,
		},
	}
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tracksheet", "config.toml")
}

// Load resolves the effective configuration. A missing config file or .env
// file is not an error.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		case len(content) > 0:
			if err := toml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode toml: %w", err)
			}
		}
	}

	if strings.TrimSpace(envFile) != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.Path, "DB")
	setString(&cfg.Display.Theme, "THEME")
	setInt(&cfg.Autosave.DelayMS, "AUTOSAVE_MS")
	setString(&cfg.Server.Addr, "ADDR")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setBool(&cfg.LLM.Enabled, "LLM_ENABLED")
	setBool(&cfg.LLM.LogCalls, "LLM_LOG_CALLS")
	setString(&cfg.LLM.Endpoint, "LLM_ENDPOINT")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setInt(&cfg.LLM.TimeoutMS, "LLM_TIMEOUT_MS")
	setInt(&cfg.LLM.MaxRetries, "LLM_MAX_RETRIES")
}

func setString(dst *string, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		*dst = v
	}
}

func setInt(dst *int, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, name string) {
	if v := os.Getenv(envPrefix + name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is required")
	}
	if _, err := theme.Lookup(c.Display.Theme); err != nil {
		return fmt.Errorf("invalid display.theme: %w", err)
	}
	if c.Autosave.DelayMS <= 0 {
		return fmt.Errorf("autosave.delay_ms must be > 0, got %d", c.Autosave.DelayMS)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.LLM.TimeoutMS <= 0 {
		return fmt.Errorf("llm.timeout_ms must be > 0, got %d", c.LLM.TimeoutMS)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must be >= 0, got %d", c.LLM.MaxRetries)
	}
	return nil
}

// AutosaveDelay returns the debounce delay as a duration.
func (c Config) AutosaveDelay() time.Duration {
	return time.Duration(c.Autosave.DelayMS) * time.Millisecond
}
