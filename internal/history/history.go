// Package history snapshots completed meeting analyses to Drive as JSON
// and restores them into a fresh working session.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/laraquah/Noted2/internal/drive"
	"github.com/laraquah/Noted2/internal/llm"
	"github.com/laraquah/Noted2/internal/minutes"
)

// DefaultFolder is the Drive folder holding the snapshots.
const DefaultFolder = "Meeting_Data"

// Snapshot is the durable record of one analyzed meeting.
type Snapshot struct {
	AIResults     *minutes.AnalysisResult `json:"ai_results"`
	Participants  string                  `json:"participants"`
	ChatHistory   []llm.Message           `json:"chat_history"`
	Date          string                  `json:"date"`
	DetectedTitle string                  `json:"detected_title"`
}

// Store saves and restores snapshots through a Drive-shaped backend.
type Store struct {
	Drive  DriveClient
	Folder string
	Now    func() time.Time
}

// DriveClient is the slice of the Drive API the store needs.
type DriveClient interface {
	Upload(ctx context.Context, folderName, fileName, mimeType string, content []byte) (string, error)
	ListJSON(ctx context.Context, folderName string) ([]drive.File, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

func NewStore(client DriveClient, folder string) *Store {
	if folder == "" {
		folder = DefaultFolder
	}
	return &Store{Drive: client, Folder: folder, Now: time.Now}
}

// Save uploads the snapshot, named after the source media file and the
// save instant so successive meetings never collide.
func (s *Store) Save(ctx context.Context, sourceFile string, snap *Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	name := SnapshotName(sourceFile, s.Now())
	id, err := s.Drive.Upload(ctx, s.Folder, name, drive.JSONMimeType, data)
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	log.Printf("history: saved snapshot %s (%d bytes)", name, len(data))
	return id, nil
}

// List returns the stored snapshots, newest first.
func (s *Store) List(ctx context.Context) ([]drive.File, error) {
	files, err := s.Drive.ListJSON(ctx, s.Folder)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return files, nil
}

// Load downloads and decodes one snapshot by file id.
func (s *Store) Load(ctx context.Context, fileID string) (*Snapshot, error) {
	data, err := s.Drive.Download(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("download snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// SnapshotName builds the Drive filename for a meeting's snapshot.
func SnapshotName(sourceFile string, at time.Time) string {
	base := filepath.Base(sourceFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "meeting"
	}
	return fmt.Sprintf("Data_%s_%s.json", base, at.Format("20060102_150405"))
}
