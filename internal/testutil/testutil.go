// Package testutil provides shared test fixtures.
package testutil

import (
	"time"

	"github.com/laraquah/Noted2/internal/config"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	return &config.Config{
		Providers: map[string]config.ProviderConfig{
			"openai": {APIKey: "test-api-key"},
			"google": {APIKey: "test-google-token"},
		},
		Speech: config.SpeechConfig{
			Language:     "en-US",
			MinSpeakers:  2,
			MaxSpeakers:  6,
			PollInterval: 2 * time.Second,
			Timeout:      time.Hour,
		},
		Storage: config.StorageConfig{
			Bucket: "test-staging",
		},
		Drive: config.DriveConfig{
			MinutesFolder: "Meeting Notes",
			ChatsFolder:   "Chats",
			DataFolder:    "Meeting_Data",
		},
		LLM: config.LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			VisionModel: "gpt-4o",
		},
		Document: config.DocumentConfig{
			Timezone:     "Asia/Singapore",
			DefaultTitle: "Meeting_Minutes",
		},
	}
}
