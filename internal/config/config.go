// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/brian/letter-agent/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Sources
	RecipientsPath string   `json:"recipients,omitempty"`  // Path to recipients JSON (CSV fallback derived from it)
	Articles       []string `json:"articles,omitempty"`    // News article URLs
	OutputDir      string   `json:"output_dir,omitempty"`  // Directory for generated artifacts

	// Recipient selection: directory selector and mailing office preference
	Select     string `json:"select,omitempty"`
	OfficePref string `json:"office_pref,omitempty" validate:"omitempty,oneof=default local dc"`

	// Sender / return address
	Sender types.Sender `json:"sender,omitempty"`

	// Style defaults
	Tone         string `json:"tone,omitempty" validate:"omitempty,oneof=professional concerned urgent supportive"`
	Focus        string `json:"focus,omitempty"`
	VoiceProfile string `json:"voice_profile,omitempty"` // Structured persona description fed to the drafter

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL URL for session persistence
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Headless browser fallback for JS-rendered articles
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields are
// checked after CLI flag merging, not here; the sender block is only validated
// when any of it is set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Sender != (types.Sender{}) {
		if err := validate.Struct(c.Sender); err != nil {
			return fmt.Errorf("config error: invalid sender: %w", err)
		}
	}

	if c.RecipientsPath != "" {
		if _, err := os.Stat(c.RecipientsPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: recipients file not found: %s", c.RecipientsPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.RecipientsPath == "" {
		result.RecipientsPath = defaults.RecipientsPath
	}
	if len(result.Articles) == 0 {
		result.Articles = defaults.Articles
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Select == "" {
		result.Select = defaults.Select
	}
	if result.OfficePref == "" {
		result.OfficePref = defaults.OfficePref
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Focus == "" {
		result.Focus = defaults.Focus
	}
	if result.VoiceProfile == "" {
		result.VoiceProfile = defaults.VoiceProfile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Sender == (types.Sender{}) {
		result.Sender = defaults.Sender
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
