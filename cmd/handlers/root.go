// Package handlers wires the CLI commands to the analysis pipeline.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tubelens/internal/analyze"
	"tubelens/internal/competitors"
	"tubelens/internal/config"
	"tubelens/internal/llm"
	"tubelens/internal/logger"
	"tubelens/internal/search"
)

var cfgFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tubelens",
		Short: "SEO analysis for YouTube video concepts",
		Long: `TubeLens - YouTube SEO Analysis

Analyzes a video concept against the current competitor landscape and
produces a complete optimization report: metadata, keywords, thumbnail
concept, scores and title variants.

Examples:
  # Analyze a video concept
  tubelens analyze "How to sharpen chisels by hand"

  # Analyze with extra context and write a markdown report
  tubelens analyze "How to sharpen chisels by hand" \
    --description "Hand-tool sharpening without jigs" \
    --audience "beginner woodworkers" --output reports/

  # Browse the report interactively
  tubelens analyze "How to sharpen chisels by hand" --tui

  # Run the HTTP API
  tubelens serve --port 8080`,
		Version: "1.2.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tubelens.yaml)")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewServeCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables, then brings up the
// logger with the configured level and format.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
		logger.Init()
		return
	}
	logger.InitWith(cfg.Logging.Level, cfg.Logging.Format)
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCmd()
	return rootCmd.Execute()
}

// buildAnalyzer assembles the pipeline from configuration: the
// configured search provider, the competitor aggregator over it and the
// Gemini completion client.
func buildAnalyzer(cfg *config.Config, providerOverride string) (*analyze.Analyzer, error) {
	providerType := search.ProviderType(cfg.Search.DefaultProvider)
	if providerOverride != "" {
		providerType = search.ProviderType(providerOverride)
	}

	factory := search.NewProviderFactory()
	provider, err := factory.CreateProvider(providerType, providerSettings(cfg, providerType))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s search provider: %w", providerType, err)
	}

	maxResults := cfg.Analysis.MaxCompetitors
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}
	aggregator := competitors.NewAggregator(provider, search.Config{
		MaxResults: maxResults,
		Timeout:    cfg.Search.Timeout,
	})

	completer, err := llm.NewClient(cfg.AI.Gemini)
	if err != nil {
		return nil, err
	}

	return analyze.NewAnalyzer(aggregator, completer), nil
}

func providerSettings(cfg *config.Config, providerType search.ProviderType) map[string]string {
	switch providerType {
	case search.ProviderTypeSerpAPI:
		return map[string]string{"api_key": cfg.Search.Providers.SerpAPI.APIKey}
	case search.ProviderTypeYouTube:
		return map[string]string{"api_key": cfg.Search.Providers.YouTube.APIKey}
	case search.ProviderTypeScrape:
		return map[string]string{"user_agent": cfg.Search.Providers.Scrape.UserAgent}
	default:
		return map[string]string{}
	}
}
