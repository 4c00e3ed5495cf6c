package main

import (
	"github.com/spf13/cobra"

	"job-recommender/internal/bootstrap"
	"job-recommender/internal/shared/config"
)

var (
	provider string
	model    string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:          "recommend",
	Short:        "Resume analysis and job recommendations",
	Long:         "recommend summarizes a PDF resume, lists skill gaps and a career roadmap, and searches LinkedIn and Naukri for matching jobs.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "LLM provider: openai, gemini or none (default: LLM_PROVIDER)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "LLM model (default: LLM_MODEL)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadApp builds the application from the environment, applying flag overrides.
func loadApp() (*bootstrap.App, error) {
	cfg := config.Load()
	if provider != "" {
		cfg.LLMProvider = provider
	}
	if model != "" {
		cfg.LLMModel = model
	}
	cfg.LogFormat = "console"
	if debug {
		cfg.LogLevel = "debug"
	} else if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	return bootstrap.Build(cfg)
}
