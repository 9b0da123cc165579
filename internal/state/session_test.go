package state

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptySession(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.TrainingSessionID != "" {
		t.Errorf("session id = %q, want empty", s.TrainingSessionID)
	}
}

func TestRecordAndLoadTrainingSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	if err := RecordTrainingStart("abc-123", path); err != nil {
		t.Fatalf("RecordTrainingStart() error = %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.TrainingSessionID != "abc-123" {
		t.Errorf("session id = %q, want abc-123", s.TrainingSessionID)
	}
	if s.StartedAt == "" {
		t.Error("started at not recorded")
	}
}

func TestClearTraining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	if err := RecordTrainingStart("abc-123", path); err != nil {
		t.Fatalf("RecordTrainingStart() error = %v", err)
	}
	if err := ClearTraining(path); err != nil {
		t.Fatalf("ClearTraining() error = %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.TrainingSessionID != "" {
		t.Error("session not cleared")
	}

	// Clearing again must not fail.
	if err := ClearTraining(path); err != nil {
		t.Errorf("second ClearTraining() error = %v", err)
	}
}
