package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.BaseURL != "http://localhost:5000" {
		t.Errorf("default base URL = %q, want http://localhost:5000", cfg.BaseURL)
	}
	if cfg.Training.Epochs != 50 {
		t.Errorf("default epochs = %d, want 50", cfg.Training.Epochs)
	}
	if cfg.Training.LearningRate != 0.001 {
		t.Errorf("default learning rate = %g, want 0.001", cfg.Training.LearningRate)
	}
	if cfg.Training.FocusArea != "full" {
		t.Errorf("default focus area = %q, want full", cfg.Training.FocusArea)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Errorf("base URL = %q, want default", cfg.BaseURL)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	cfg := NewConfig()
	cfg.BaseURL = "http://music.example.com:8080"
	cfg.Training.Epochs = 100
	cfg.Training.FocusArea = "melody"
	cfg.Output.Format = "json"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.BaseURL != cfg.BaseURL {
		t.Errorf("base URL = %q, want %q", loaded.BaseURL, cfg.BaseURL)
	}
	if loaded.Training.Epochs != 100 {
		t.Errorf("epochs = %d, want 100", loaded.Training.Epochs)
	}
	if loaded.Training.FocusArea != "melody" {
		t.Errorf("focus area = %q, want melody", loaded.Training.FocusArea)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("output format = %q, want json", loaded.Output.Format)
	}
}

func TestSaveNoLeftoverTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	if err := Save(NewConfig(), path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after save")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid defaults", func(c *Config) {}, nil},
		{"empty base url", func(c *Config) { c.BaseURL = "  " }, ErrMissingBaseURL},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://host" }, ErrInvalidBaseURL},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, ErrInvalidBaseURL},
		{"zero epochs", func(c *Config) { c.Training.Epochs = 0 }, ErrInvalidEpochs},
		{"huge epochs", func(c *Config) { c.Training.Epochs = 5000 }, ErrInvalidEpochs},
		{"learning rate too high", func(c *Config) { c.Training.LearningRate = 1.5 }, ErrInvalidLearnRate},
		{"unknown focus area", func(c *Config) { c.Training.FocusArea = "harmony" }, ErrInvalidFocusArea},
		{"unknown output format", func(c *Config) { c.Output.Format = "yaml" }, ErrInvalidOutputStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
