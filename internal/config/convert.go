package config

import (
	"os"

	"github.com/laraquah/Noted2/internal/basecamp"
	"github.com/laraquah/Noted2/internal/drive"
	"github.com/laraquah/Noted2/internal/llm"
	"github.com/laraquah/Noted2/internal/storage"
	"github.com/laraquah/Noted2/internal/transcribe"
)

// envVarForProvider maps a provider name to its conventional API key
// environment variable.
func envVarForProvider(name string) string {
	switch name {
	case "openai":
		return "OPENAI_API_KEY"
	case "google":
		return "GOOGLE_ACCESS_TOKEN"
	}
	return ""
}

// resolveAPIKey returns the key for a provider, config first, then the
// environment.
func (c *Config) resolveAPIKey(name string) string {
	if c.Providers != nil {
		if pc, ok := c.Providers[name]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}
	if env := envVarForProvider(name); env != "" {
		return os.Getenv(env)
	}
	return ""
}

// ToLLMConfig returns the generative-model adapter configuration.
func (c *Config) ToLLMConfig() llm.Config {
	return llm.Config{
		Provider:    c.LLM.Provider,
		APIKey:      c.resolveAPIKey(c.LLM.Provider),
		Model:       c.LLM.Model,
		VisionModel: c.LLM.VisionModel,
	}
}

// ToSpeechConfig returns the speech adapter configuration.
func (c *Config) ToSpeechConfig() transcribe.Config {
	return transcribe.Config{
		Endpoint:     c.Speech.Endpoint,
		Token:        c.resolveAPIKey("google"),
		Language:     c.Speech.Language,
		MinSpeakers:  c.Speech.MinSpeakers,
		MaxSpeakers:  c.Speech.MaxSpeakers,
		PollInterval: c.Speech.PollInterval,
	}
}

// ToStorageConfig returns the staging-bucket client configuration.
func (c *Config) ToStorageConfig() storage.Config {
	return storage.Config{
		Endpoint: c.Storage.Endpoint,
		Bucket:   c.Storage.Bucket,
		Token:    c.resolveAPIKey("google"),
	}
}

// ToDriveConfig returns the Drive client configuration.
func (c *Config) ToDriveConfig() drive.Config {
	return drive.Config{
		Endpoint: c.Drive.Endpoint,
		Token:    c.resolveAPIKey("google"),
	}
}

// ToBasecampConfig returns the Basecamp client configuration.
func (c *Config) ToBasecampConfig() basecamp.Config {
	return basecamp.Config{
		Endpoint:     c.Basecamp.Endpoint,
		LaunchpadURL: c.Basecamp.LaunchpadURL,
		AccountID:    c.Basecamp.AccountID,
		ClientID:     c.Basecamp.ClientID,
		ClientSecret: c.Basecamp.ClientSecret,
		RefreshToken: c.Basecamp.RefreshToken,
		UserAgent:    c.Basecamp.UserAgent,
	}
}
