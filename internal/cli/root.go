// Package cli provides the command-line interface for maqamctl.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maqamstudio/maqamctl/internal/config"
	"github.com/maqamstudio/maqamctl/internal/logging"
)

var (
	// Global flags
	cfgFile string
	baseURL string
	verbose bool
	asJSON  bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// Version information - set by main package at startup
var (
	Version   = "v0.3.0-dev"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "maqamctl",
		Short: "CLI client for the Arabic Music AI backend",
		Long: `maqamctl ` + Version + ` - Built: ` + BuildTime + `
Client for an Arabic Music AI backend: upload songs with metadata,
trigger music generation, and start and observe model training.

The backend address comes from ~/.config/maqamctl/config or --api-url.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				// Commands surface the config error themselves.
				cfg = config.NewConfig()
			}

			logger = logging.NewConsoleLogger(cfg.Output.Color)
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}

			asJSON = useJSONOutput(cmd.Flags().Changed("json"), asJSON, cfg.Output.Format)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of tables")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\nReceived signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newSongsCmd())
	rootCmd.AddCommand(newGeneratedCmd())
	rootCmd.AddCommand(newTrainingCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// useJSONOutput picks the view rendering: an explicit --json flag wins,
// otherwise the configured output format decides.
func useJSONOutput(flagChanged, flagValue bool, format string) bool {
	if flagChanged {
		return flagValue
	}
	return format == "json"
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}
