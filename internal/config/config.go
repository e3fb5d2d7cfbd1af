// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/caddie/internal/teesheet"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CADDIE_"

// Config holds the application configuration.
type Config struct {
	Course    CourseConfig    `toml:"course"`
	Assistant AssistantConfig `toml:"assistant"`
	Storage   StorageConfig   `toml:"storage"`
	UI        UIConfig        `toml:"ui"`
}

// CourseConfig describes the tee sheet layout.
type CourseConfig struct {
	Name            string `toml:"name"`
	FirstTee        string `toml:"first_tee"`        // e.g., "06:00"
	LastTee         string `toml:"last_tee"`         // e.g., "17:00"
	IntervalMinutes int    `toml:"interval_minutes"` // gap between tee times
}

// AssistantConfig holds LLM provider settings for the booking assistant.
type AssistantConfig struct {
	Provider   string `toml:"provider"` // "openai", "lmstudio", "ollama"
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	MaxRetries int    `toml:"max_retries"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "fairway", "links", "night"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Course: CourseConfig{
			Name:            "Home Course",
			FirstTee:        "06:00",
			LastTee:         "17:00",
			IntervalMinutes: 8,
		},
		Assistant: AssistantConfig{
			Provider:   "openai",
			Model:      "gpt-4o-mini",
			BaseURL:    "",
			MaxRetries: 2,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "fairway",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "caddie.db"
	}
	return filepath.Join(home, ".local", "share", "caddie", "caddie.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "caddie", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// A .env file next to the config is loaded into the environment first
// (never overriding variables already set). Then defaults, the file and
// CADDIE_* environment overrides are applied in that order.
func LoadFrom(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "COURSE_NAME"); v != "" {
		cfg.Course.Name = v
	}
	if v := os.Getenv(EnvPrefix + "FIRST_TEE"); v != "" {
		cfg.Course.FirstTee = v
	}
	if v := os.Getenv(EnvPrefix + "LAST_TEE"); v != "" {
		cfg.Course.LastTee = v
	}
	if v := os.Getenv(EnvPrefix + "INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sINTERVAL_MINUTES: %w", EnvPrefix, err)
		}
		cfg.Course.IntervalMinutes = n
	}

	if v := os.Getenv(EnvPrefix + "ASSISTANT_PROVIDER"); v != "" {
		cfg.Assistant.Provider = v
	}
	if v := os.Getenv(EnvPrefix + "ASSISTANT_MODEL"); v != "" {
		cfg.Assistant.Model = v
	}
	if v := os.Getenv(EnvPrefix + "ASSISTANT_BASE_URL"); v != "" {
		cfg.Assistant.BaseURL = v
	}

	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvPrefix + "UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validProviders = map[string]bool{
	"openai":   true,
	"lmstudio": true,
	"ollama":   true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Course.FirstTee, "first_tee"); err != nil {
		return err
	}
	if err := validateTime(c.Course.LastTee, "last_tee"); err != nil {
		return err
	}
	if c.Course.FirstTee > c.Course.LastTee {
		return errors.New("first_tee must not be after last_tee")
	}
	if c.Course.IntervalMinutes < 1 || c.Course.IntervalMinutes > 60 {
		return fmt.Errorf("interval_minutes must be between 1 and 60, got %d", c.Course.IntervalMinutes)
	}
	if !validProviders[strings.ToLower(c.Assistant.Provider)] {
		return fmt.Errorf("unknown assistant provider: %s", c.Assistant.Provider)
	}
	if c.Assistant.MaxRetries < 0 {
		return errors.New("max_retries cannot be negative")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// TeeTimes returns the course's tee times for a day.
func (c *Config) TeeTimes() []string {
	return teesheet.TeeTimes(c.Course.FirstTee, c.Course.LastTee, c.Course.IntervalMinutes)
}

// validateTime checks if a time string is a 24h HH:MM value.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' || !isDigits(t[0:2]) || !isDigits(t[3:5]) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if t[0:2] > "23" || t[3:5] > "59" {
		return fmt.Errorf("%s is out of range, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
