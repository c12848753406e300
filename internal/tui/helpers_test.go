package tui

import (
	"testing"

	"github.com/laraquah/Noted2/internal/config"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "***"},
		{"short", "***"},
		{"sk-proj-abcdefghijklmnop", "sk-proj...mnop"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFormatLabels(t *testing.T) {
	cfg := config.DefaultConfig()

	if got := formatProvidersLabel(cfg); got != "API Providers (not configured)" {
		t.Errorf("providers label = %q", got)
	}
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: "sk"}
	if got := formatProvidersLabel(cfg); got != "API Providers (1 configured)" {
		t.Errorf("providers label = %q", got)
	}

	if got := formatStorageLabel(cfg); got != "Staging Storage (no bucket)" {
		t.Errorf("storage label = %q", got)
	}
	cfg.Storage.Bucket = "staging"
	if got := formatStorageLabel(cfg); got != "Staging Storage (staging)" {
		t.Errorf("storage label = %q", got)
	}

	if got := formatBasecampLabel(cfg); got != "Basecamp (not configured)" {
		t.Errorf("basecamp label = %q", got)
	}
	cfg.Basecamp.AccountID = "42"
	if got := formatBasecampLabel(cfg); got != "Basecamp (account 42)" {
		t.Errorf("basecamp label = %q", got)
	}
}
