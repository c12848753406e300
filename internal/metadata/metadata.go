// Package metadata derives a best-effort Metadata guess from a media
// file: container duration via ffprobe, and date/title/venue read off a
// representative video frame by a vision-capable model. Sniffing never
// fails the caller; on any internal error the affected fields keep their
// safe defaults. Partial success is allowed - duration may populate even if
// the vision call fails, and vice versa.
package metadata

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"
)

// DefaultTitle is the placeholder used when no title could be detected.
const DefaultTitle = "Meeting_Minutes"

// Metadata is the sniffed result. Never authoritative - it only pre-fills
// editable fields.
type Metadata struct {
	StartTime       *time.Time // in the configured zone; nil when not found
	DurationSeconds float64
	Title           string
	Venue           string
}

// EndTime returns the start time shifted by the detected duration, or nil
// when either piece is missing.
func (m Metadata) EndTime() *time.Time {
	if m.StartTime == nil || m.DurationSeconds <= 0 {
		return nil
	}
	end := m.StartTime.Add(time.Duration(m.DurationSeconds * float64(time.Second)))
	return &end
}

// TimeRange formats "03:04 PM - 04:10 PM" from the detected start and
// duration, or "" when unknown.
func (m Metadata) TimeRange() string {
	if m.StartTime == nil {
		return ""
	}
	end := m.EndTime()
	if end == nil {
		return m.StartTime.Format("03:04 PM")
	}
	return m.StartTime.Format("03:04 PM") + " - " + end.Format("03:04 PM")
}

// VisionAdapter answers a free-text question about one JPEG image.
type VisionAdapter interface {
	DescribeImage(ctx context.Context, imageJPEG []byte, instruction string) (string, error)
}

// Prober reports a media container duration in seconds.
type Prober func(ctx context.Context, path string) (float64, error)

// FrameExtractor writes one representative frame as JPEG and returns its path.
type FrameExtractor func(ctx context.Context, path string) (string, error)

// FrameReader loads the extracted frame bytes.
type FrameReader func(path string) ([]byte, error)

// Sniffer extracts metadata from uploaded media.
type Sniffer struct {
	Vision   VisionAdapter
	Probe    Prober
	Extract  FrameExtractor
	Read     FrameReader
	Remove   func(string)
	Location *time.Location // target zone for detected timestamps
}

const visionInstruction = `Analyze this meeting screenshot. Return a JSON object with these keys:
- "datetime": the date and time shown (format YYYY-MM-DD HH:MM).
- "title": the large central text naming the meeting (e.g. 'Company A x Company B').
- "venue": the platform name in a corner (e.g. 'Microsoft Teams', 'Zoom').
If any value is not found, return "None" for that value.
Return ONLY raw JSON.`

// Sniff produces the best-effort metadata guess for the media at path.
// It never returns an error; every internal failure is swallowed and the
// corresponding fields keep their defaults.
func (s *Sniffer) Sniff(ctx context.Context, path string) Metadata {
	meta := Metadata{Title: DefaultTitle}

	if seconds, err := s.Probe(ctx, path); err == nil {
		meta.DurationSeconds = seconds
	} else {
		log.Printf("metadata: duration probe skipped: %v", err)
	}

	framePath, err := s.Extract(ctx, path)
	if err != nil {
		log.Printf("metadata: frame extraction skipped: %v", err)
		return meta
	}
	defer s.Remove(framePath)

	frame, err := s.Read(framePath)
	if err != nil {
		log.Printf("metadata: frame read failed: %v", err)
		return meta
	}

	answer, err := s.Vision.DescribeImage(ctx, frame, visionInstruction)
	if err != nil {
		log.Printf("metadata: vision call failed: %v", err)
		return meta
	}

	s.applyVisionAnswer(&meta, answer)
	return meta
}

// visionFields is the constrained JSON shape requested from the model.
type visionFields struct {
	Datetime string `json:"datetime"`
	Title    string `json:"title"`
	Venue    string `json:"venue"`
}

// applyVisionAnswer parses the model response defensively: code-fence
// markers stripped, the literal string "None" treated as field absent, and
// the detected date-time (assumed UTC) converted into the target zone. A
// parse failure leaves the defaults in place.
func (s *Sniffer) applyVisionAnswer(meta *Metadata, answer string) {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	var fields visionFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		log.Printf("metadata: unparsable vision JSON: %v", err)
		return
	}

	if present(fields.Title) {
		meta.Title = sanitizeTitle(fields.Title)
	}
	if present(fields.Venue) {
		meta.Venue = fields.Venue
	}
	if present(fields.Datetime) {
		if ts, err := time.Parse("2006-01-02 15:04", fields.Datetime); err == nil {
			local := ts.UTC().In(s.location())
			meta.StartTime = &local
		} else {
			log.Printf("metadata: unparsable datetime %q: %v", fields.Datetime, err)
		}
	}
}

func (s *Sniffer) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func present(v string) bool {
	return v != "" && v != "None"
}

// sanitizeTitle makes the detected title safe for use in filenames.
func sanitizeTitle(title string) string {
	title = strings.ReplaceAll(title, " ", "_")
	return strings.ReplaceAll(title, "/", "-")
}
