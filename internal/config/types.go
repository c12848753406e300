package config

import "time"

type Config struct {
	Providers map[string]ProviderConfig `toml:"providers"`
	Speech    SpeechConfig              `toml:"speech"`
	Storage   StorageConfig             `toml:"storage"`
	Drive     DriveConfig               `toml:"drive"`
	Basecamp  BasecampConfig            `toml:"basecamp"`
	LLM       LLMConfig                 `toml:"llm"`
	Document  DocumentConfig            `toml:"document"`
}

// ProviderConfig holds the API key for one provider.
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

// SpeechConfig configures the diarized speech-to-text service.
type SpeechConfig struct {
	Endpoint     string        `toml:"endpoint"`
	Language     string        `toml:"language"`
	MinSpeakers  int           `toml:"min_speakers"`
	MaxSpeakers  int           `toml:"max_speakers"`
	PollInterval time.Duration `toml:"poll_interval"`
	Timeout      time.Duration `toml:"timeout"`
}

// StorageConfig configures the staging bucket used during transcription.
type StorageConfig struct {
	Endpoint string `toml:"endpoint"`
	Bucket   string `toml:"bucket"`
}

// DriveConfig configures the Drive destination folders.
type DriveConfig struct {
	Endpoint      string `toml:"endpoint"`
	MinutesFolder string `toml:"minutes_folder"`
	ChatsFolder   string `toml:"chats_folder"`
	DataFolder    string `toml:"data_folder"`
}

// BasecampConfig configures the Basecamp posting target.
type BasecampConfig struct {
	AccountID    string `toml:"account_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	UserAgent    string `toml:"user_agent"`
	Endpoint     string `toml:"endpoint"`
	LaunchpadURL string `toml:"launchpad_url"`
}

// LLMConfig configures the generative models.
type LLMConfig struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	VisionModel string `toml:"vision_model"`
}

// DocumentConfig configures the rendered minutes document.
type DocumentConfig struct {
	Timezone     string `toml:"timezone"` // IANA zone for detected meeting times
	DefaultTitle string `toml:"default_title"`
}
