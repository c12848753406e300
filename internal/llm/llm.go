// Package llm provides the generative-language adapters used by the
// minute-generation, metadata-sniffing, and chat stages.
package llm

import (
	"context"
	"fmt"
)

// Adapter is the full surface the pipeline stages need from a
// generative-language backend.
type Adapter interface {
	// Complete returns a full text completion for prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// DescribeImage sends one JPEG image plus an instruction and returns the
	// model's free-text answer.
	DescribeImage(ctx context.Context, imageJPEG []byte, instruction string) (string, error)
	// Stream produces a completion incrementally, invoking onFragment for
	// each text fragment as it arrives, and returns the accumulated text.
	Stream(ctx context.Context, messages []Message, onFragment func(string)) (string, error)
}

// Message is one turn of conversation context for streaming calls.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Config holds LLM adapter configuration.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	VisionModel string
}

// NewAdapter creates an LLM adapter based on the provider.
func NewAdapter(cfg Config) (Adapter, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
