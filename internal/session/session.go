// Package session persists the working state of one analyzed meeting
// between command invocations: the generated minutes, the edited fields,
// and the running chat history.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/laraquah/Noted2/internal/llm"
	"github.com/laraquah/Noted2/internal/minutes"
)

// Session is the state shared by analyze, review, export, post and chat.
type Session struct {
	SourceFile    string                  `json:"source_file"`
	Analysis      *minutes.AnalysisResult `json:"analysis,omitempty"`
	Participants  string                  `json:"participants"`
	ChatHistory   []llm.Message           `json:"chat_history"`
	DetectedTitle string                  `json:"detected_title"`
	Venue         string                  `json:"venue"`
	Date          string                  `json:"date"`
	TimeRange     string                  `json:"time_range"`
	AbsentReps    string                  `json:"absent_reps"`
	PreparedBy    string                  `json:"prepared_by"`
	CreatedAt     time.Time               `json:"created_at"`
	Posted        bool                    `json:"posted"`
}

// Path returns the location of the current-session file.
func Path() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "noted2", "session.json"), nil
}

// Load reads the current session. A missing file is not an error and
// yields a nil session.
func Load() (*Session, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &s, nil
}

// Save writes the session to the current-session file.
func Save(s *Session) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

func SaveTo(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Clear removes the current-session file. A missing file is fine.
func Clear() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
