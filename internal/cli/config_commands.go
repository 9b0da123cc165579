// Package cli provides configuration commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maqamstudio/maqamctl/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration operations (show, init, set-url)",
		Long:  `Commands for inspecting and writing the maqamctl configuration file.`,
	}

	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigSetURLCmd())

	return configCmd
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := cfgFile
			if path == "" {
				path, _ = config.DefaultConfigPath()
			}

			fmt.Printf("Config file:    %s\n", path)
			fmt.Printf("Backend URL:    %s\n", cfg.BaseURL)
			fmt.Printf("Epochs:         %d\n", cfg.Training.Epochs)
			fmt.Printf("Learning rate:  %g\n", cfg.Training.LearningRate)
			fmt.Printf("Focus area:     %s\n", cfg.Training.FocusArea)
			fmt.Printf("Output format:  %s\n", cfg.Output.Format)
			return nil
		},
	}
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig()
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.Save(cfg, cfgFile); err != nil {
				return err
			}

			path := cfgFile
			if path == "" {
				path, _ = config.DefaultConfigPath()
			}
			fmt.Printf("Configuration written to %s\n", path)
			return nil
		},
	}
}

// newConfigSetURLCmd creates the 'config set-url' command.
func newConfigSetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Set the backend base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg.BaseURL = args[0]
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.Save(cfg, cfgFile); err != nil {
				return err
			}
			fmt.Printf("Backend URL set to %s\n", cfg.BaseURL)
			return nil
		},
	}
}
