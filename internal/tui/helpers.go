package tui

import (
	"fmt"

	"github.com/laraquah/Noted2/internal/config"
)

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

func formatProvidersLabel(cfg *config.Config) string {
	configured := 0
	for _, pc := range cfg.Providers {
		if pc.APIKey != "" {
			configured++
		}
	}
	if configured == 0 {
		return "API Providers (not configured)"
	}
	return fmt.Sprintf("API Providers (%d configured)", configured)
}

func formatStorageLabel(cfg *config.Config) string {
	if cfg.Storage.Bucket == "" {
		return "Staging Storage (no bucket)"
	}
	return fmt.Sprintf("Staging Storage (%s)", cfg.Storage.Bucket)
}

func formatBasecampLabel(cfg *config.Config) string {
	if cfg.Basecamp.AccountID == "" {
		return "Basecamp (not configured)"
	}
	return fmt.Sprintf("Basecamp (account %s)", cfg.Basecamp.AccountID)
}
