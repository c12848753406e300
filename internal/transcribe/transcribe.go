// Package transcribe runs the diarized transcription stage: transcode the
// uploaded media to FLAC, push it to object storage, submit a long-running
// recognition job against the resulting URI, and linearize the word stream
// into a single transcript with speaker-turn labels.
package transcribe

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/laraquah/Noted2/internal/media"
)

// Word is one recognized word with its diarization speaker tag.
type Word struct {
	Text       string
	SpeakerTag int
}

// Result is one recognition result: a plain transcript plus, for the final
// result, the full diarized word stream.
type Result struct {
	Transcript string
	Words      []Word
}

// SpeechAdapter submits a recognition job for an object-store URI and
// blocks until it completes or ctx is done.
type SpeechAdapter interface {
	Recognize(ctx context.Context, uri string) ([]Result, error)
}

// ObjectStore is the slice of the storage client the stage needs.
type ObjectStore interface {
	Upload(ctx context.Context, localPath, name string) (string, error)
	Delete(ctx context.Context, name string) error
}

// Stage orchestrates one transcription run.
type Stage struct {
	Store     ObjectStore
	Speech    SpeechAdapter
	Transcode func(ctx context.Context, path string) (string, error)
	Timeout   time.Duration // bound on the recognition wait, default one hour
}

func NewStage(store ObjectStore, speech SpeechAdapter) *Stage {
	return &Stage{
		Store:     store,
		Speech:    speech,
		Transcode: media.TranscodeFLAC,
		Timeout:   time.Hour,
	}
}

// Transcribe returns the linearized transcript for the media at localPath,
// or an error - never both. The uploaded intermediate object is deleted
// afterward on a best-effort basis.
func (s *Stage) Transcribe(ctx context.Context, localPath, baseName string) (string, error) {
	flacPath, err := s.Transcode(ctx, localPath)
	if err != nil {
		return "", fmt.Errorf("transcode: %w", err)
	}
	defer media.RemoveQuietly(flacPath)

	objectName := strings.TrimSuffix(baseName, filepath.Ext(baseName)) + ".flac"
	uri, err := s.Store.Upload(ctx, flacPath, objectName)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer func() {
		// cleanup must not inherit a cancelled ctx
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Store.Delete(cleanupCtx, objectName); err != nil {
			log.Printf("transcribe: failed to delete intermediate object %s: %v", objectName, err)
		}
	}()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = time.Hour
	}
	recognizeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := s.Speech.Recognize(recognizeCtx, uri)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("transcription returned no results; the audio might be silent")
	}

	return Linearize(results), nil
}

// Linearize reconstructs a single text stream from recognition results. The
// final result's word stream is scanned in order, inserting a paragraph
// break plus a new "Speaker N" label every time the speaker tag changes.
// Diarization tags carry no stability guarantee across silence gaps, so a
// tag change is treated as a new turn even for the same physical speaker.
// An empty word stream falls back to concatenating each result's plain
// transcript without speaker labels.
func Linearize(results []Result) string {
	words := results[len(results)-1].Words

	var sb strings.Builder
	currentSpeaker := -1
	for _, w := range words {
		if w.SpeakerTag != currentSpeaker {
			currentSpeaker = w.SpeakerTag
			fmt.Fprintf(&sb, "\n\nSpeaker %d: ", currentSpeaker)
		}
		sb.WriteString(w.Text)
		sb.WriteString(" ")
	}

	if strings.TrimSpace(sb.String()) == "" {
		parts := make([]string, 0, len(results))
		for _, r := range results {
			parts = append(parts, r.Transcript)
		}
		return strings.Join(parts, " ")
	}
	return sb.String()
}
