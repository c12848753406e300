package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements Adapter using OpenAI's chat completions API.
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

// NewOpenAIAdapter creates a new OpenAI LLM adapter.
func NewOpenAIAdapter(cfg Config) *OpenAIAdapter {
	return &OpenAIAdapter{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
	}
}

func (a *OpenAIAdapter) model() string {
	if a.config.Model != "" {
		return a.config.Model
	}
	return "gpt-4o-mini"
}

func (a *OpenAIAdapter) visionModel() string {
	if a.config.VisionModel != "" {
		return a.config.VisionModel
	}
	return a.model()
}

func (a *OpenAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}

	req := openai.ChatCompletionRequest{
		Model: a.model(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-llm-adapter: completion failed after %v: %v", duration, err)
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no response choices")
	}

	log.Printf("openai-llm-adapter: completed in %v (%d chars)", duration, len(resp.Choices[0].Message.Content))
	return resp.Choices[0].Message.Content, nil
}

func (a *OpenAIAdapter) DescribeImage(ctx context.Context, imageJPEG []byte, instruction string) (string, error) {
	if len(imageJPEG) == 0 {
		return "", fmt.Errorf("empty image")
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageJPEG)
	req := openai.ChatCompletionRequest{
		Model: a.visionModel(),
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai-llm-adapter: vision call failed after %v: %v", duration, err)
		return "", fmt.Errorf("openai vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai vision completion: no response choices")
	}

	log.Printf("openai-llm-adapter: vision answered in %v", duration)
	return resp.Choices[0].Message.Content, nil
}

func (a *OpenAIAdapter) Stream(ctx context.Context, messages []Message, onFragment func(string)) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:  a.model(),
		Stream: true,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	stream, err := a.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai stream: %w", err)
	}
	defer stream.Close()

	var full string
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full, nil
		}
		if err != nil {
			return "", fmt.Errorf("openai stream read: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		fragment := resp.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}
		full += fragment
		if onFragment != nil {
			onFragment(fragment)
		}
	}
}
