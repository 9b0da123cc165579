// Package cli provides model training commands.
package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/maqamstudio/maqamctl/internal/config"
	"github.com/maqamstudio/maqamctl/internal/models"
	"github.com/maqamstudio/maqamctl/internal/services"
	"github.com/maqamstudio/maqamctl/internal/view"
	"github.com/maqamstudio/maqamctl/internal/workflow"
)

// newTrainingCmd creates the 'training' command group.
func newTrainingCmd() *cobra.Command {
	trainingCmd := &cobra.Command{
		Use:   "training",
		Short: "Model training operations (prereqs, start, stop, status, watch, history)",
		Long:  `Commands for starting, stopping and observing model training sessions.`,
	}

	trainingCmd.AddCommand(newTrainingPrereqsCmd())
	trainingCmd.AddCommand(newTrainingStartCmd())
	trainingCmd.AddCommand(newTrainingStopCmd())
	trainingCmd.AddCommand(newTrainingStatusCmd())
	trainingCmd.AddCommand(newTrainingWatchCmd())
	trainingCmd.AddCommand(newTrainingHistoryCmd())

	return trainingCmd
}

// newTrainingPrereqsCmd creates the 'training prereqs' command.
func newTrainingPrereqsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prereqs",
		Short: "Check whether the library is ready for training",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getTrainingService()
			if err != nil {
				return err
			}

			prereqs, err := svc.Prerequisites(GetContext())
			if err != nil {
				return fmt.Errorf("failed to check prerequisites: %w", err)
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, prereqs)
			}
			view.RenderPrerequisites(os.Stdout, prereqs)
			return nil
		},
	}
}

// trainingProgressBar builds the progress bar for a watched session and
// returns the snapshot callback feeding it.
func trainingProgressBar() func(models.TrainingStatus) {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("training"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return func(s models.TrainingStatus) {
		bar.Set(int(s.ProgressPercent))
		if s.TotalEpochs > 0 {
			bar.Describe(fmt.Sprintf("training epoch %d/%d loss %.4f", s.CurrentEpoch, s.TotalEpochs, s.Loss))
		}
	}
}

// reportOutcome prints the settling snapshot and the refreshed views.
func reportOutcome(outcome *services.TrainingOutcome) {
	fmt.Printf("Training finished: %s\n\n", outcome.Final.State)
	view.RenderTrainingStatus(os.Stdout, outcome.Final)
	fmt.Println()
	view.RenderDashboard(os.Stdout, outcome.Stats)
	fmt.Println()
	view.RenderTrainingHistory(os.Stdout, outcome.History)
}

// newTrainingStartCmd creates the 'training start' command.
func newTrainingStartCmd() *cobra.Command {
	var cfg models.TrainingConfig

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a training session and watch it to completion",
		Long: `Start a model training session and observe it until it settles.
The command returns once the session completes, stops, fails, or the
poll budget runs out.

Example:
  maqamctl training start --epochs 100 --learning-rate 0.001 --batch-size 32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyTrainingDefaults(cmd, &cfg, appCfg.Training)

			svc, err := getTrainingService()
			if err != nil {
				return err
			}

			outcome, err := svc.Start(GetContext(), cfg, trainingProgressBar())
			if err != nil {
				if workflow.IsValidationError(err) {
					return fmt.Errorf("training not started: %w", err)
				}
				return fmt.Errorf("training failed: %w", err)
			}

			reportOutcome(outcome)
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.Epochs, "epochs", 50, "Number of training epochs (default from config)")
	cmd.Flags().Float64Var(&cfg.LearningRate, "learning-rate", 0.001, "Learning rate (default from config)")
	cmd.Flags().IntVar(&cfg.BatchSize, "batch-size", 32, "Batch size")
	cmd.Flags().StringVar(&cfg.FocusArea, "focus", "", "Model focus: melody, rhythm, lyrics or full (default from config)")

	return cmd
}

// applyTrainingDefaults fills the configured training defaults into fields
// whose flags were not set on the command line. Explicit flags always win.
func applyTrainingDefaults(cmd *cobra.Command, cfg *models.TrainingConfig, defaults config.TrainingDefaults) {
	flags := cmd.Flags()
	if !flags.Changed("epochs") {
		cfg.Epochs = defaults.Epochs
	}
	if !flags.Changed("learning-rate") {
		cfg.LearningRate = defaults.LearningRate
	}
	if !flags.Changed("focus") {
		cfg.FocusArea = defaults.FocusArea
	}
}

// newTrainingStopCmd creates the 'training stop' command.
func newTrainingStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active training session",
		Long: `Ask the backend to stop the active session, then keep polling until
a status snapshot confirms the session actually left the training
state. The stop request alone is not trusted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getTrainingService()
			if err != nil {
				return err
			}

			outcome, err := svc.Stop(GetContext())
			if err != nil {
				return fmt.Errorf("stop failed: %w", err)
			}
			if outcome == nil {
				fmt.Println("Stop requested; an attached watcher will observe it.")
				return nil
			}

			reportOutcome(outcome)
			return nil
		},
	}
}

// newTrainingStatusCmd creates the 'training status' command.
func newTrainingStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show one training status snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getTrainingService()
			if err != nil {
				return err
			}

			status, err := svc.Status(GetContext())
			if err != nil {
				return fmt.Errorf("failed to fetch training status: %w", err)
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, status)
			}
			view.RenderTrainingStatus(os.Stdout, status)
			return nil
		},
	}
}

// newTrainingWatchCmd creates the 'training watch' command.
func newTrainingWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Attach to the running training session",
		Long: `Attach to a training session started elsewhere and observe it to
its terminal state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getTrainingService()
			if err != nil {
				return err
			}

			outcome, err := svc.Watch(GetContext(), trainingProgressBar())
			if err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}

			reportOutcome(outcome)
			return nil
		},
	}
}

// newTrainingHistoryCmd creates the 'training history' command.
func newTrainingHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List finished training sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := getTrainingService()
			if err != nil {
				return err
			}

			history, err := svc.History(GetContext())
			if err != nil {
				return fmt.Errorf("failed to fetch training history: %w", err)
			}

			if asJSON {
				return view.RenderJSON(os.Stdout, history)
			}
			view.RenderTrainingHistory(os.Stdout, history)
			return nil
		},
	}
}
