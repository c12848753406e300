// Package minutes turns a diarized transcript into structured meeting
// minutes via a generative-language model, and splits the single text
// response into named sections using literal delimiter markers.
package minutes

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Section markers the model is instructed to emit.
const (
	MarkerOverview       = "## OVERVIEW ##"
	MarkerDiscussion     = "## DISCUSSION ##"
	MarkerNextSteps      = "## NEXT STEPS ##"
	MarkerClientRequests = "## CLIENT REQUESTS ##"
)

// AnalysisResult holds the four generated sections plus the verbatim
// transcript. It is produced once per analysis run and serialized as-is into
// history snapshots.
type AnalysisResult struct {
	Overview       string `json:"overview"`
	Discussion     string `json:"discussion"`
	NextSteps      string `json:"next_steps"`
	ClientRequests string `json:"client_reqs"`
	FullTranscript string `json:"full_transcript"`
}

// Adapter is the generative-language backend used for minute generation.
type Adapter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces an AnalysisResult from a transcript and roster text.
type Generator struct {
	adapter Adapter
}

func NewGenerator(adapter Adapter) *Generator {
	return &Generator{adapter: adapter}
}

// Generate sends the fixed prompt and splits the response into sections.
// The transcript is carried through verbatim.
func (g *Generator) Generate(ctx context.Context, transcript, participants string) (*AnalysisResult, error) {
	prompt := BuildPrompt(transcript, participants)

	start := time.Now()
	resp, err := g.adapter.Complete(ctx, prompt)
	duration := time.Since(start)

	if err != nil {
		log.Printf("minutes: generation failed after %v: %v", duration, err)
		return nil, fmt.Errorf("minute generation: %w", err)
	}
	log.Printf("minutes: generated %d chars in %v", len(resp), duration)

	result := ParseSections(resp)
	result.FullTranscript = transcript
	return result, nil
}

// BuildPrompt assembles the fixed minute-generation prompt: the roster so
// the model can map anonymous speaker labels to real names, the transcript,
// and the four marker-delimited sections it must emit.
func BuildPrompt(transcript, participants string) string {
	return fmt.Sprintf(`You are an expert meeting secretary.
Here is the context of who was in the meeting:
%s

The transcript below uses anonymous labels like "Speaker 1", "Speaker 2".
Your job is to figure out which Speaker matches which Name from the list above.

Transcript:
%s
---
YOUR TASKS:
1. RECONSTRUCTION: when writing the notes, DO NOT use "Speaker 1". Use real names.
2. EXTRACTION: emit exactly these four sections, each introduced by its literal marker line:

%s
[Brief summary of WHO met and WHAT was discussed - 2-3 sentences]

%s
[Detailed bullet points grouped under ## section headers. Use the form:
* **Topic:** what was said, using real names.]

%s
[Specific actionable items. DO NOT MISS ANY TASKS. Use the form:
* **[Assigned Name]**: [Action] - Due: [time if mentioned]]

%s
[Specific questions or requests asked BY the client.]
`, participants, transcript, MarkerOverview, MarkerDiscussion, MarkerNextSteps, MarkerClientRequests)
}

// ParseSections splits a model response on the literal markers. Each
// section's content is whatever lies between its marker and the next
// expected marker; a missing marker yields an empty section, except a
// missing discussion marker makes the entire raw response the discussion
// text so an unstructured answer is never lost.
func ParseSections(text string) *AnalysisResult {
	result := &AnalysisResult{
		Overview:       between(text, MarkerOverview, MarkerDiscussion),
		Discussion:     between(text, MarkerDiscussion, MarkerNextSteps),
		NextSteps:      between(text, MarkerNextSteps, MarkerClientRequests),
		ClientRequests: after(text, MarkerClientRequests),
	}
	if !contains(text, MarkerDiscussion) {
		result.Discussion = text
	}
	return result
}
