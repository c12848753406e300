package minutes

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseSections_AllMarkers(t *testing.T) {
	resp := "## OVERVIEW ##\nA\n## DISCUSSION ##\nB\n## NEXT STEPS ##\nC\n## CLIENT REQUESTS ##\nD"

	got := ParseSections(resp)

	if got.Overview != "A" {
		t.Errorf("Overview = %q, want %q", got.Overview, "A")
	}
	if got.Discussion != "B" {
		t.Errorf("Discussion = %q, want %q", got.Discussion, "B")
	}
	if got.NextSteps != "C" {
		t.Errorf("NextSteps = %q, want %q", got.NextSteps, "C")
	}
	if got.ClientRequests != "D" {
		t.Errorf("ClientRequests = %q, want %q", got.ClientRequests, "D")
	}
}

func TestParseSections_NoLossAtBoundaries(t *testing.T) {
	resp := "## OVERVIEW ##\nfirst line\nsecond line\n## DISCUSSION ##\n* point one\n* point two\n## NEXT STEPS ##\nstep\n## CLIENT REQUESTS ##\nreq"

	got := ParseSections(resp)

	if got.Overview != "first line\nsecond line" {
		t.Errorf("Overview = %q", got.Overview)
	}
	if got.Discussion != "* point one\n* point two" {
		t.Errorf("Discussion = %q", got.Discussion)
	}
}

func TestParseSections_MissingDiscussionUsesWholeText(t *testing.T) {
	resp := "The model ignored the format and wrote a free-form answer."

	got := ParseSections(resp)

	if got.Discussion != resp {
		t.Errorf("Discussion = %q, want entire raw response", got.Discussion)
	}
	if got.Overview != "" || got.NextSteps != "" || got.ClientRequests != "" {
		t.Errorf("other sections should be empty, got %+v", got)
	}
}

func TestParseSections_PartialMarkers(t *testing.T) {
	resp := "## DISCUSSION ##\nonly discussion here"

	got := ParseSections(resp)

	if got.Discussion != "only discussion here" {
		t.Errorf("Discussion = %q", got.Discussion)
	}
	if got.Overview != "" {
		t.Errorf("Overview = %q, want empty", got.Overview)
	}
}

type fakeAdapter struct {
	prompt string
	resp   string
	err    error
}

func (f *fakeAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.resp, f.err
}

func TestGenerate_PromptAndParsing(t *testing.T) {
	transcript := "Speaker 0: Hello Speaker 1: Hi"
	participants := "Alice (Client)\nBob (iFoundries)"
	adapter := &fakeAdapter{
		resp: "## OVERVIEW ##\nA\n## DISCUSSION ##\nB\n## NEXT STEPS ##\nC\n## CLIENT REQUESTS ##\nD",
	}

	gen := NewGenerator(adapter)
	got, err := gen.Generate(context.Background(), transcript, participants)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.Contains(adapter.prompt, transcript) {
		t.Errorf("prompt missing transcript")
	}
	if !strings.Contains(adapter.prompt, participants) {
		t.Errorf("prompt missing participant roster")
	}

	if got.Overview != "A" || got.Discussion != "B" || got.NextSteps != "C" || got.ClientRequests != "D" {
		t.Errorf("sections = %+v", got)
	}
	if got.FullTranscript != transcript {
		t.Errorf("FullTranscript = %q, want verbatim transcript", got.FullTranscript)
	}
}

func TestGenerate_AdapterError(t *testing.T) {
	adapter := &fakeAdapter{err: errors.New("quota exceeded")}

	gen := NewGenerator(adapter)
	_, err := gen.Generate(context.Background(), "t", "p")
	if err == nil {
		t.Fatal("Generate() should surface adapter errors")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error = %v, want wrapped cause", err)
	}
}
