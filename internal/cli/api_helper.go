package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/maqamstudio/maqamctl/internal/api"
	"github.com/maqamstudio/maqamctl/internal/config"
	"github.com/maqamstudio/maqamctl/internal/services"
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getAPIClient builds the backend client from config and flags.
func getAPIClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg, GetLogger()), nil
}

// getSongService wires a SongService for command use.
func getSongService() (*services.SongService, error) {
	client, err := getAPIClient()
	if err != nil {
		return nil, err
	}
	return services.NewSongService(client, nil, GetLogger()), nil
}

// getGenerationService wires a GenerationService for command use.
func getGenerationService() (*services.GenerationService, error) {
	client, err := getAPIClient()
	if err != nil {
		return nil, err
	}
	return services.NewGenerationService(client, nil, GetLogger()), nil
}

// getTrainingService wires a TrainingService for command use.
func getTrainingService() (*services.TrainingService, error) {
	client, err := getAPIClient()
	if err != nil {
		return nil, err
	}
	return services.NewTrainingService(client, nil, GetLogger()), nil
}

// confirmPrompt asks the user for a yes/no confirmation on stdin.
func confirmPrompt(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
