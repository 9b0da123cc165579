package cli

import (
	"testing"

	"github.com/maqamstudio/maqamctl/internal/config"
	"github.com/maqamstudio/maqamctl/internal/models"
)

func TestApplyTrainingDefaults(t *testing.T) {
	defaults := config.TrainingDefaults{Epochs: 75, LearningRate: 0.01, FocusArea: "melody"}

	t.Run("config fills unset flags", func(t *testing.T) {
		cmd := newTrainingStartCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg := models.TrainingConfig{Epochs: 50, LearningRate: 0.001, BatchSize: 32}
		applyTrainingDefaults(cmd, &cfg, defaults)

		if cfg.Epochs != 75 {
			t.Errorf("Epochs = %d, want config default 75", cfg.Epochs)
		}
		if cfg.LearningRate != 0.01 {
			t.Errorf("LearningRate = %g, want config default 0.01", cfg.LearningRate)
		}
		if cfg.FocusArea != "melody" {
			t.Errorf("FocusArea = %q, want config default melody", cfg.FocusArea)
		}
	})

	t.Run("explicit flags win over config", func(t *testing.T) {
		cmd := newTrainingStartCmd()
		if err := cmd.ParseFlags([]string{"--epochs", "200", "--focus", "rhythm"}); err != nil {
			t.Fatal(err)
		}

		cfg := models.TrainingConfig{Epochs: 200, LearningRate: 0.001, BatchSize: 32, FocusArea: "rhythm"}
		applyTrainingDefaults(cmd, &cfg, defaults)

		if cfg.Epochs != 200 {
			t.Errorf("Epochs = %d, want flag value 200", cfg.Epochs)
		}
		if cfg.FocusArea != "rhythm" {
			t.Errorf("FocusArea = %q, want flag value rhythm", cfg.FocusArea)
		}
		if cfg.LearningRate != 0.01 {
			t.Errorf("LearningRate = %g, want config default 0.01", cfg.LearningRate)
		}
	})
}

func TestUseJSONOutput(t *testing.T) {
	tests := []struct {
		name        string
		flagChanged bool
		flagValue   bool
		format      string
		want        bool
	}{
		{"config table", false, false, "table", false},
		{"config json", false, false, "json", true},
		{"flag overrides config table", true, true, "table", true},
		{"negated flag overrides config json", true, false, "json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := useJSONOutput(tt.flagChanged, tt.flagValue, tt.format); got != tt.want {
				t.Errorf("useJSONOutput(%v, %v, %q) = %v, want %v", tt.flagChanged, tt.flagValue, tt.format, got, tt.want)
			}
		})
	}
}
