package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var ErrConfigNotFound = errors.New("config not found")

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	notedDir := filepath.Join(configDir, "noted2")
	if err := os.MkdirAll(notedDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(notedDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: run noted configure", ErrConfigNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	log.Printf("Config: loading configuration from %s", configPath)
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}
	config.applyDefaults()

	log.Printf("Config: configuration loaded successfully")
	return &config, nil
}

// Save writes the configuration back to the config file.
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(configPath, config)
}

func SaveTo(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyDefaults fills the fields a hand-edited config commonly leaves out.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Speech.Language == "" {
		c.Speech.Language = defaults.Speech.Language
	}
	if c.Speech.MinSpeakers == 0 {
		c.Speech.MinSpeakers = defaults.Speech.MinSpeakers
	}
	if c.Speech.MaxSpeakers == 0 {
		c.Speech.MaxSpeakers = defaults.Speech.MaxSpeakers
	}
	if c.Speech.PollInterval == 0 {
		c.Speech.PollInterval = defaults.Speech.PollInterval
	}
	if c.Speech.Timeout == 0 {
		c.Speech.Timeout = defaults.Speech.Timeout
	}

	if c.Drive.MinutesFolder == "" {
		c.Drive.MinutesFolder = defaults.Drive.MinutesFolder
	}
	if c.Drive.ChatsFolder == "" {
		c.Drive.ChatsFolder = defaults.Drive.ChatsFolder
	}
	if c.Drive.DataFolder == "" {
		c.Drive.DataFolder = defaults.Drive.DataFolder
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = defaults.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaults.LLM.Model
	}
	if c.LLM.VisionModel == "" {
		c.LLM.VisionModel = c.LLM.Model
	}

	if c.Document.Timezone == "" {
		c.Document.Timezone = defaults.Document.Timezone
	}
	if c.Document.DefaultTitle == "" {
		c.Document.DefaultTitle = defaults.Document.DefaultTitle
	}
}
