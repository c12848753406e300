package metadata

import (
	"os"
	"time"

	"github.com/laraquah/Noted2/internal/media"
)

// NewSniffer wires a Sniffer to the real ffmpeg/ffprobe tooling.
func NewSniffer(vision VisionAdapter, loc *time.Location) *Sniffer {
	return &Sniffer{
		Vision:   vision,
		Probe:    media.ProbeDuration,
		Extract:  media.ExtractFrame,
		Read:     os.ReadFile,
		Remove:   media.RemoveQuietly,
		Location: loc,
	}
}
