// Package pipeline orchestrates the analyze flow: metadata sniffing,
// transcription, minutes generation, and the durable snapshot upload.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/laraquah/Noted2/internal/history"
	"github.com/laraquah/Noted2/internal/metadata"
	"github.com/laraquah/Noted2/internal/minutes"
)

type Status string

const (
	Idle         Status = "idle"
	Sniffing     Status = "sniffing"
	Transcribing Status = "transcribing"
	Generating   Status = "generating"
	Saving       Status = "saving"
	Done         Status = "done"
)

// Result is everything one analyze run produces.
type Result struct {
	Metadata   metadata.Metadata
	Transcript string
	Analysis   *minutes.AnalysisResult
	SnapshotID string
}

// Analyzer wires the pipeline stages. Each stage is a function field so
// callers and tests can swap implementations.
type Analyzer struct {
	Sniff        func(ctx context.Context, mediaPath string) metadata.Metadata
	Transcribe   func(ctx context.Context, mediaPath string) (string, error)
	Generate     func(ctx context.Context, participants, transcript string) (*minutes.AnalysisResult, error)
	SaveSnapshot func(ctx context.Context, sourceFile string, snap *history.Snapshot) (string, error)
	OnStatus     func(Status)
}

func (a *Analyzer) setStatus(s Status) {
	if a.OnStatus != nil {
		a.OnStatus(s)
	}
}

// Run executes the full analyze flow. The snapshot is uploaded only after
// every earlier stage succeeded; a snapshot failure is logged but does not
// fail the run, since the results are already in hand.
func (a *Analyzer) Run(ctx context.Context, mediaPath, participants string) (*Result, error) {
	start := time.Now()
	result := &Result{}

	a.setStatus(Sniffing)
	log.Printf("Analyzer: sniffing metadata from %s", mediaPath)
	result.Metadata = a.Sniff(ctx, mediaPath)

	a.setStatus(Transcribing)
	log.Printf("Analyzer: transcribing %s", mediaPath)
	transcript, err := a.Transcribe(ctx, mediaPath)
	if err != nil {
		a.setStatus(Idle)
		return nil, fmt.Errorf("transcription: %w", err)
	}
	result.Transcript = transcript

	a.setStatus(Generating)
	log.Printf("Analyzer: generating minutes (%d chars of transcript)", len(transcript))
	analysis, err := a.Generate(ctx, participants, transcript)
	if err != nil {
		a.setStatus(Idle)
		return nil, fmt.Errorf("minutes generation: %w", err)
	}
	result.Analysis = analysis

	if a.SaveSnapshot != nil {
		a.setStatus(Saving)
		snap := &history.Snapshot{
			AIResults:     analysis,
			Participants:  participants,
			Date:          snapshotDate(result.Metadata),
			DetectedTitle: result.Metadata.Title,
		}
		id, err := a.SaveSnapshot(ctx, mediaPath, snap)
		if err != nil {
			log.Printf("Analyzer: snapshot save failed (continuing): %v", err)
		} else {
			result.SnapshotID = id
		}
	}

	a.setStatus(Done)
	log.Printf("Analyzer: completed in %s", time.Since(start))
	return result, nil
}

func snapshotDate(m metadata.Metadata) string {
	if m.StartTime == nil {
		return ""
	}
	return m.StartTime.Format("02 January 2006")
}
