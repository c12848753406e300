package config

import (
	"fmt"
	"time"
)

func (c *Config) Validate() error {
	if c.LLM.Provider != "openai" {
		return fmt.Errorf("invalid llm.provider: %s (must be openai)", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("invalid llm.model: empty")
	}
	if c.resolveAPIKey("openai") == "" {
		return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
	}

	if c.Speech.MinSpeakers <= 0 {
		return fmt.Errorf("invalid speech.min_speakers: %d", c.Speech.MinSpeakers)
	}
	if c.Speech.MaxSpeakers < c.Speech.MinSpeakers {
		return fmt.Errorf("invalid speech.max_speakers: %d (must be >= min_speakers %d)", c.Speech.MaxSpeakers, c.Speech.MinSpeakers)
	}
	if c.Speech.PollInterval <= 0 {
		return fmt.Errorf("invalid speech.poll_interval: %v", c.Speech.PollInterval)
	}
	if c.Speech.Timeout <= 0 {
		return fmt.Errorf("invalid speech.timeout: %v", c.Speech.Timeout)
	}

	if c.Storage.Bucket == "" {
		return fmt.Errorf("invalid storage.bucket: empty")
	}

	if c.Drive.MinutesFolder == "" || c.Drive.ChatsFolder == "" || c.Drive.DataFolder == "" {
		return fmt.Errorf("invalid drive folders: minutes_folder, chats_folder and data_folder must all be set")
	}

	if _, err := time.LoadLocation(c.Document.Timezone); err != nil {
		return fmt.Errorf("invalid document.timezone: %s", c.Document.Timezone)
	}

	// Basecamp is optional; when any field is set the whole block must be.
	if c.basecampConfigured() {
		if c.Basecamp.AccountID == "" {
			return fmt.Errorf("invalid basecamp.account_id: empty")
		}
		if c.Basecamp.ClientID == "" || c.Basecamp.ClientSecret == "" || c.Basecamp.RefreshToken == "" {
			return fmt.Errorf("basecamp posting needs client_id, client_secret and refresh_token")
		}
	}

	return nil
}

func (c *Config) basecampConfigured() bool {
	b := c.Basecamp
	return b.AccountID != "" || b.ClientID != "" || b.ClientSecret != "" || b.RefreshToken != ""
}
