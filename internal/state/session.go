// Package state persists the small bits of client session state between
// runs: currently the identifier of the active training session, so a stop
// or watch command issued later can reference it.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maqamstudio/maqamctl/internal/constants"
)

// Session is the persisted client session state.
type Session struct {
	TrainingSessionID string `json:"training_session_id,omitempty"`
	StartedAt         string `json:"started_at,omitempty"`
}

// DefaultSessionPath returns the session file location, next to the config.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName, "session.json"), nil
}

// Load reads the session file. A missing file yields an empty session.
func Load(path string) (*Session, error) {
	if path == "" {
		var err error
		path, err = DefaultSessionPath()
		if err != nil {
			return &Session{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}
	return &s, nil
}

// Save writes the session file atomically.
func Save(s *Session, path string) error {
	if path == "" {
		var err error
		path, err = DefaultSessionPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// RecordTrainingStart stores the active session id.
func RecordTrainingStart(sessionID, path string) error {
	return Save(&Session{
		TrainingSessionID: sessionID,
		StartedAt:         time.Now().UTC().Format(time.RFC3339),
	}, path)
}

// ClearTraining forgets the active session. Clearing an absent file is a
// no-op.
func ClearTraining(path string) error {
	if path == "" {
		var err error
		path, err = DefaultSessionPath()
		if err != nil {
			return err
		}
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}
