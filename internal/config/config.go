// Package config provides configuration management for maqamctl.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/maqamstudio/maqamctl/internal/constants"
)

// Config holds the client settings for talking to the Arabic Music AI
// backend.
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\maqamctl\config
//   - Unix: ~/.config/maqamctl/config
//
// INI format:
//
//	[backend]
//	base_url = http://localhost:5000
//
//	[training]
//	default_epochs = 50
//	default_learning_rate = 0.001
//	default_focus_area = full
//
//	[output]
//	format = table
//	color = true
type Config struct {
	// Backend connection settings
	BaseURL string `ini:"base_url"`

	// Training defaults pre-filled into start requests
	Training TrainingDefaults

	// Output rendering settings
	Output OutputConfig
}

// TrainingDefaults contains default hyperparameters for training sessions.
type TrainingDefaults struct {
	// Epochs is the default number of training epochs.
	// Default: 50
	Epochs int `ini:"default_epochs"`

	// LearningRate is the default learning rate.
	// Default: 0.001
	LearningRate float64 `ini:"default_learning_rate"`

	// FocusArea is the default model focus: melody, rhythm, lyrics or full.
	// Default: "full"
	FocusArea string `ini:"default_focus_area"`
}

// OutputConfig contains settings for rendered output.
type OutputConfig struct {
	// Format selects the default view rendering: table or json.
	// Default: "table"
	Format string `ini:"format"`

	// Color enables colored terminal output.
	// Default: true
	Color bool `ini:"color"`
}

// Validation errors
var (
	ErrMissingBaseURL     = errors.New("base_url is required")
	ErrInvalidBaseURL     = errors.New("base_url must be a valid http or https URL")
	ErrInvalidEpochs      = errors.New("default_epochs must be between 1 and 1000")
	ErrInvalidLearnRate   = errors.New("default_learning_rate must be between 0 and 1")
	ErrInvalidFocusArea   = errors.New("default_focus_area must be one of: melody, rhythm, lyrics, full")
	ErrInvalidOutputStyle = errors.New("output format must be table or json")
)

var focusAreas = map[string]bool{
	"melody": true,
	"rhythm": true,
	"lyrics": true,
	"full":   true,
}

// DefaultConfigPath returns the default path for the config file.
// - Windows: %USERPROFILE%\.config\maqamctl\config
// - Unix: ~/.config/maqamctl/config
func DefaultConfigPath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", constants.AppName)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", constants.AppName)
	}

	return filepath.Join(configDir, "config"), nil
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL: constants.DefaultBaseURL,
		Training: TrainingDefaults{
			Epochs:       50,
			LearningRate: 0.001,
			FocusArea:    "full",
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
	}
}

// Load loads configuration from an INI file.
// If the file doesn't exist, returns a config with default values and no error.
// If the file exists but is invalid, returns an error.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil // Return defaults if we can't determine path
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // Return defaults if config doesn't exist
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	backendSection := iniFile.Section("backend")
	cfg.BaseURL = backendSection.Key("base_url").MustString(cfg.BaseURL)

	trainingSection := iniFile.Section("training")
	cfg.Training.Epochs = trainingSection.Key("default_epochs").MustInt(50)
	cfg.Training.LearningRate = trainingSection.Key("default_learning_rate").MustFloat64(0.001)
	cfg.Training.FocusArea = trainingSection.Key("default_focus_area").MustString("full")

	outputSection := iniFile.Section("output")
	cfg.Output.Format = outputSection.Key("format").MustString("table")
	cfg.Output.Color = outputSection.Key("color").MustBool(true)

	return cfg, nil
}

// Save saves configuration to an INI file.
// Creates parent directories if they don't exist.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	backendSection, err := iniFile.NewSection("backend")
	if err != nil {
		return fmt.Errorf("failed to create backend section: %w", err)
	}
	backendSection.Key("base_url").SetValue(cfg.BaseURL)

	trainingSection, err := iniFile.NewSection("training")
	if err != nil {
		return fmt.Errorf("failed to create training section: %w", err)
	}
	trainingSection.Key("default_epochs").SetValue(fmt.Sprintf("%d", cfg.Training.Epochs))
	trainingSection.Key("default_learning_rate").SetValue(fmt.Sprintf("%g", cfg.Training.LearningRate))
	trainingSection.Key("default_focus_area").SetValue(cfg.Training.FocusArea)

	outputSection, err := iniFile.NewSection("output")
	if err != nil {
		return fmt.Errorf("failed to create output section: %w", err)
	}
	outputSection.Key("format").SetValue(cfg.Output.Format)
	outputSection.Key("color").SetValue(fmt.Sprintf("%t", cfg.Output.Color))

	// Temporary file + rename for atomicity
	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set config permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is usable.
// Returns nil if valid, or an error describing what's wrong.
func (cfg *Config) Validate() error {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if cfg.Training.Epochs < 1 || cfg.Training.Epochs > 1000 {
		return ErrInvalidEpochs
	}
	if cfg.Training.LearningRate <= 0 || cfg.Training.LearningRate >= 1 {
		return ErrInvalidLearnRate
	}
	if !focusAreas[cfg.Training.FocusArea] {
		return ErrInvalidFocusArea
	}

	if cfg.Output.Format != "table" && cfg.Output.Format != "json" {
		return ErrInvalidOutputStyle
	}

	return nil
}
