// Package config loads and persists the application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config represents the application configuration.
type Config struct {
	// Tokens holds per-provider bearer tokens for private repositories,
	// keyed by canonical provider name.
	Tokens map[string]string `json:"tokens,omitempty" validate:"omitempty,dive,keys,oneof=github gitlab bitbucket sourcehut,endkeys,required"`
	// RegistryPath overrides the default template registry location.
	RegistryPath string `json:"registry_path,omitempty" validate:"omitempty,filepath"`
	// ProgressBar toggles the download progress bar.
	ProgressBar bool `json:"progress_bar"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Tokens:      map[string]string{},
		ProgressBar: true,
	}
}

// Validate checks the configuration against its struct constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// LoadConfig loads the configuration from the config file, creating it with
// defaults when it does not exist yet.
func LoadConfig() (Config, error) {
	return loadFrom(getConfigPath())
}

func loadFrom(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := saveTo(configPath, config); err != nil {
			return Config{}, fmt.Errorf("error creating default config: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(config Config) error {
	return saveTo(getConfigPath(), config)
}

func saveTo(configPath string, config Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// getConfigPath returns the path to the config file.
func getConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "tget", "config.json")
}
