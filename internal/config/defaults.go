package config

import "time"

// DefaultConfig returns the initial configuration used by the configure
// wizard.
func DefaultConfig() *Config {
	return &Config{
		Providers: make(map[string]ProviderConfig),
		Speech: SpeechConfig{
			Language:     "en-US",
			MinSpeakers:  2,
			MaxSpeakers:  6,
			PollInterval: 2 * time.Second,
			Timeout:      time.Hour,
		},
		Drive: DriveConfig{
			MinutesFolder: "Meeting Notes",
			ChatsFolder:   "Chats",
			DataFolder:    "Meeting_Data",
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			VisionModel: "gpt-4o",
		},
		Document: DocumentConfig{
			Timezone:     "Asia/Singapore",
			DefaultTitle: "Meeting_Minutes",
		},
	}
}
