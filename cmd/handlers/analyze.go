package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tubelens/internal/analyze"
	"tubelens/internal/config"
	"tubelens/internal/core"
	"tubelens/internal/render"
	"tubelens/internal/tui"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var (
		description string
		audience    string
		geo         string
		provider    string
		outputDir   string
		useTUI      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [title]",
		Short: "Analyze a video concept and produce an SEO report",
		Long: `Analyze a video concept against the competitor landscape.

The title is required. Description, audience and geography are optional
context that sharpens the report.

Examples:
  # Basic analysis printed to the terminal
  tubelens analyze "How to sharpen chisels by hand"

  # Full context, markdown report written to reports/
  tubelens analyze "How to sharpen chisels by hand" \
    --description "Hand-tool sharpening without jigs" \
    --audience "beginner woodworkers" \
    --geo "US" \
    --output reports/

  # Browse the report in the terminal UI
  tubelens analyze "How to sharpen chisels by hand" --tui`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := core.AnalysisRequest{
				Title:       strings.Join(args, " "),
				Description: description,
				Audience:    audience,
				Geo:         geo,
			}
			return runAnalyze(cmd.Context(), req, provider, outputDir, useTUI)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What the video covers")
	cmd.Flags().StringVar(&audience, "audience", "", "Target audience")
	cmd.Flags().StringVar(&geo, "geo", "", "Target geography")
	cmd.Flags().StringVar(&provider, "provider", "", "Search provider override (serpapi, youtube, scrape)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Write a markdown report into this directory")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse the report interactively")

	return cmd
}

func runAnalyze(ctx context.Context, req core.AnalysisRequest, provider, outputDir string, useTUI bool) error {
	if err := analyze.ValidateRequest(req); err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	analyzer, err := buildAnalyzer(cfg, provider)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, req)
	if err != nil {
		var stageErr *core.StageError
		if errors.As(err, &stageErr) && stageErr.Raw != "" {
			return fmt.Errorf("%s\n\nraw completion:\n%s", stageErr.Message, stageErr.Raw)
		}
		return err
	}

	if useTUI {
		tui.Start(result, req.Title)
		return nil
	}

	fmt.Println(render.TerminalSummary(result, req.Title))

	if outputDir != "" {
		path, err := render.WriteReportFile(result, req.Title, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", path)
	}

	return nil
}
