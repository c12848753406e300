// Package chat answers follow-up questions about an analyzed meeting by
// streaming completions grounded on the full transcript.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/laraquah/Noted2/internal/llm"
)

const instructions = `You are a professional meeting assistant. Answer questions about the meeting transcript below.

Rules:
- Use the participants' real names when the roster identifies them; never refer to "Speaker 1" or other speaker numbers.
- Keep answers concise and grounded in the transcript. If the transcript does not cover the question, say so.
- Maintain a professional tone.`

// Responder turns user questions into streamed answers over a transcript.
type Responder struct {
	adapter llm.Adapter
}

func NewResponder(adapter llm.Adapter) *Responder {
	return &Responder{adapter: adapter}
}

// BuildSystemPrompt anchors the conversation on the transcript and roster.
func BuildSystemPrompt(transcript, participants string) string {
	var sb strings.Builder
	sb.WriteString(instructions)
	if strings.TrimSpace(participants) != "" {
		fmt.Fprintf(&sb, "\n\nParticipants:\n%s", participants)
	}
	fmt.Fprintf(&sb, "\n\nTranscript:\n%s", transcript)
	return sb.String()
}

// Ask streams an answer to question, replaying history for context, and
// returns the updated history. On failure the history is returned
// unchanged so nothing half-answered is persisted.
func (r *Responder) Ask(ctx context.Context, transcript, participants string, history []llm.Message, question string, onFragment func(string)) ([]llm.Message, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: BuildSystemPrompt(transcript, participants)})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	start := time.Now()
	answer, err := r.adapter.Stream(ctx, messages, onFragment)
	if err != nil {
		return history, fmt.Errorf("chat completion: %w", err)
	}
	log.Printf("chat: answered in %s (%d chars)", time.Since(start), len(answer))

	updated := append(append([]llm.Message{}, history...),
		llm.Message{Role: llm.RoleUser, Content: question},
		llm.Message{Role: llm.RoleAssistant, Content: answer},
	)
	return updated, nil
}
