package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// GigSchedule defines a recurring gig series to expand when scheduling
type GigSchedule struct {
	RRule   string `yaml:"rrule" validate:"required"`
	Title   string `yaml:"title" validate:"required"`
	Venue   string `yaml:"venue,omitempty"`
	Address string `yaml:"address,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL    string        `yaml:"databaseURL" validate:"required"`
	GigSchedules   []GigSchedule `yaml:"gigSchedules,omitempty" validate:"dive"`
	HomeBase       string        `yaml:"homeBase,omitempty"`
	GeocodeBaseURL string        `yaml:"geocodeBaseURL,omitempty" validate:"omitempty,url"`
	RouteBaseURL   string        `yaml:"routeBaseURL,omitempty" validate:"omitempty,url"`
	GmailUserID    string        `yaml:"gmailUserID,omitempty" validate:"omitempty,email"`
	GmailSender    string        `yaml:"gmailSender,omitempty"`
	// DefaultUserID identifies the operator when no --user flag is given
	DefaultUserID string `yaml:"defaultUserID,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from gigplan_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment, e.g. env="test"
// loads "gigplan_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, schedule := range cfg.GigSchedules {
		if _, err := rrule.StrToRRule(schedule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in gigSchedules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home
// directory, with an optional environment suffix
func findConfigFile(env string) (string, error) {
	configFileName := "gigplan_config.yaml"
	if env != "" {
		configFileName = "gigplan_config." + env + ".yaml"
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

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
