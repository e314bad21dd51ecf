package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const clockLayout = "15:04"

// Config represents the application configuration.
type Config struct {
	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `yaml:"databaseURL" validate:"required"`
	// Timezone is the single operating timezone (IANA name) all shift dates
	// and comparisons live in.
	Timezone string `yaml:"timezone" validate:"required"`
	// DayStart and DayEnd bound the visible day window on schedule views,
	// as HH:MM clock strings.
	DayStart string `yaml:"dayStart,omitempty"`
	DayEnd   string `yaml:"dayEnd,omitempty"`
	// PublishSheetID and PublishTab name the Google Sheet the schedule grid
	// is published to. Leave empty to disable publishing.
	PublishSheetID string `yaml:"publishSheetID,omitempty"`
	PublishTab     string `yaml:"publishTab,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" looks for "shiftboard_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the timezone, and the day
// window clock strings.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	dayStart, err := time.Parse(clockLayout, cfg.DayStart)
	if err != nil {
		return fmt.Errorf("invalid dayStart %q: %w", cfg.DayStart, err)
	}
	dayEnd, err := time.Parse(clockLayout, cfg.DayEnd)
	if err != nil {
		return fmt.Errorf("invalid dayEnd %q: %w", cfg.DayEnd, err)
	}
	if !dayStart.Before(dayEnd) {
		return fmt.Errorf("dayEnd %q must be after dayStart %q", cfg.DayEnd, cfg.DayStart)
	}

	return nil
}

// Location returns the operating timezone. Validate must have passed first.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DayStart == "" {
		cfg.DayStart = "06:00"
	}
	if cfg.DayEnd == "" {
		cfg.DayEnd = "22:00"
	}
}

// findConfigFile searches for the config file in the current directory and
// the user's home directory. A non-empty env selects the env-suffixed file.
func findConfigFile(env string) (string, error) {
	configFileName := "shiftboard_config.yaml"
	if env != "" {
		configFileName = "shiftboard_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
