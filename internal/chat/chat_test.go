package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/laraquah/Noted2/internal/llm"
)

type fakeAdapter struct {
	gotMessages []llm.Message
	fragments   []string
	err         error
}

func (f *fakeAdapter) Complete(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeAdapter) DescribeImage(context.Context, []byte, string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeAdapter) Stream(_ context.Context, messages []llm.Message, onFragment func(string)) (string, error) {
	f.gotMessages = messages
	if f.err != nil {
		return "", f.err
	}
	var full strings.Builder
	for _, fr := range f.fragments {
		onFragment(fr)
		full.WriteString(fr)
	}
	return full.String(), nil
}

func TestAskAppendsHistory(t *testing.T) {
	adapter := &fakeAdapter{fragments: []string{"Ann raised ", "the budget."}}
	responder := NewResponder(adapter)

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "earlier question"},
		{Role: llm.RoleAssistant, Content: "earlier answer"},
	}

	var streamed strings.Builder
	updated, err := responder.Ask(context.Background(),
		"Speaker 1: hello", "Ann (Client)", history,
		"Who raised the budget?", func(s string) { streamed.WriteString(s) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if streamed.String() != "Ann raised the budget." {
		t.Errorf("fragments not streamed: %q", streamed.String())
	}
	if len(updated) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(updated))
	}
	if updated[2].Content != "Who raised the budget?" || updated[2].Role != llm.RoleUser {
		t.Errorf("question not appended: %+v", updated[2])
	}
	if updated[3].Content != "Ann raised the budget." || updated[3].Role != llm.RoleAssistant {
		t.Errorf("answer not appended: %+v", updated[3])
	}
	// Input history slice must stay untouched.
	if len(history) != 2 {
		t.Errorf("input history mutated: %d entries", len(history))
	}
}

func TestAskSendsSystemPromptWithTranscript(t *testing.T) {
	adapter := &fakeAdapter{fragments: []string{"ok"}}
	responder := NewResponder(adapter)

	_, err := responder.Ask(context.Background(),
		"Speaker 2: the deadline is Friday", "Ann (Client)", nil,
		"When is the deadline?", func(string) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(adapter.gotMessages) != 2 {
		t.Fatalf("expected system + user message, got %d", len(adapter.gotMessages))
	}
	system := adapter.gotMessages[0]
	if system.Role != llm.RoleSystem {
		t.Errorf("first message must be the system prompt, got role %s", system.Role)
	}
	if !strings.Contains(system.Content, "the deadline is Friday") {
		t.Error("system prompt missing the transcript")
	}
	if !strings.Contains(system.Content, "Ann (Client)") {
		t.Error("system prompt missing the participants")
	}
	if !strings.Contains(system.Content, "never refer to \"Speaker 1\"") {
		t.Error("system prompt missing the speaker-name rule")
	}
}

func TestAskErrorLeavesHistoryUnchanged(t *testing.T) {
	adapter := &fakeAdapter{err: errors.New("rate limited")}
	responder := NewResponder(adapter)

	history := []llm.Message{{Role: llm.RoleUser, Content: "q"}}
	updated, err := responder.Ask(context.Background(), "t", "", history, "new q", func(string) {})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(updated) != 1 || updated[0].Content != "q" {
		t.Errorf("history changed on failure: %+v", updated)
	}
}

func TestBuildSystemPromptOmitsEmptyRoster(t *testing.T) {
	prompt := BuildSystemPrompt("some transcript", "  ")
	if strings.Contains(prompt, "Participants:") {
		t.Error("empty roster must not emit a participants block")
	}
	if !strings.Contains(prompt, "some transcript") {
		t.Error("transcript missing from prompt")
	}
}
