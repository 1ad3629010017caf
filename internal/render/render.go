// Package render turns a finished analysis into human-facing output:
// a markdown report file and a styled terminal summary.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tubelens/internal/core"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MarkdownReport renders the full analysis as a markdown document.
func MarkdownReport(result *core.AnalysisResult, requestTitle string) string {
	report := result.Data
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# SEO Report: %s\n\n", requestTitle))
	sb.WriteString(fmt.Sprintf("Generated %s\n\n", time.Now().UTC().Format("2006-01-02")))

	sb.WriteString("## Optimized Metadata\n\n")
	sb.WriteString(fmt.Sprintf("**Title:** %s\n\n", report.OptimizedMetadata.Title))
	sb.WriteString(fmt.Sprintf("**Description:**\n\n%s\n\n", report.OptimizedMetadata.Description))
	sb.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(report.OptimizedMetadata.Tags, ", ")))
	sb.WriteString(fmt.Sprintf("**Hashtags:** %s\n\n", strings.Join(report.OptimizedMetadata.Hashtags, " ")))

	sb.WriteString("## Keyword Research\n\n")
	writeList(&sb, "Primary keywords", report.KeywordResearch.PrimaryKeywords)
	writeList(&sb, "Long-tail keywords", report.KeywordResearch.LongTailKeywords)
	sb.WriteString(fmt.Sprintf("**Search intent:** %s\n\n", report.KeywordResearch.SearchIntent))
	sb.WriteString(fmt.Sprintf("**Difficulty:** %s\n\n", report.KeywordResearch.Difficulty))

	sb.WriteString("## Competitor Landscape\n\n")
	if len(result.Competitors) == 0 {
		sb.WriteString("No competitor data available.\n\n")
	} else {
		for i, video := range result.Competitors {
			sb.WriteString(fmt.Sprintf("%d. **%s** by %s (%d views)\n", i+1, video.Title, video.Channel, video.ViewCount))
		}
		sb.WriteString(fmt.Sprintf("\nAverage views: %d | Competition tier: %s\n\n", result.AverageViews, result.CompetitionTier))
	}

	sb.WriteString("## Competitor Analysis\n\n")
	writeList(&sb, "Common patterns", report.CompetitorAnalysis.CommonPatterns)
	writeList(&sb, "Content gaps", report.CompetitorAnalysis.ContentGaps)
	writeList(&sb, "Differentiators", report.CompetitorAnalysis.Differentiators)

	sb.WriteString("## Thumbnail Concept\n\n")
	sb.WriteString(fmt.Sprintf("**Concept:** %s\n\n", report.ThumbnailOptimizer.Concept))
	sb.WriteString(fmt.Sprintf("**Text overlay:** %s\n\n", report.ThumbnailOptimizer.TextOverlay))
	sb.WriteString(fmt.Sprintf("**Color scheme:** %s\n\n", report.ThumbnailOptimizer.ColorScheme))
	sb.WriteString(fmt.Sprintf("**Composition:** %s\n\n", report.ThumbnailOptimizer.Composition))

	sb.WriteString("## SEO Scores\n\n")
	sb.WriteString("| Dimension | Score |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Title | %d |\n", report.SeoScoreBreakdown.TitleScore))
	sb.WriteString(fmt.Sprintf("| Description | %d |\n", report.SeoScoreBreakdown.DescriptionScore))
	sb.WriteString(fmt.Sprintf("| Tags | %d |\n", report.SeoScoreBreakdown.TagsScore))
	sb.WriteString(fmt.Sprintf("| Hashtags | %d |\n", report.SeoScoreBreakdown.HashtagsScore))
	sb.WriteString(fmt.Sprintf("| **Overall** | **%d** |\n\n", report.SeoScoreBreakdown.OverallScore))

	sb.WriteString("## Trends and Topics\n\n")
	writeList(&sb, "Current trends", report.TrendsAndTopics.CurrentTrends)
	writeList(&sb, "Related topics", report.TrendsAndTopics.RelatedTopics)
	writeList(&sb, "Seasonal opportunities", report.TrendsAndTopics.SeasonalOpportunities)

	sb.WriteString("## Title Variants\n\n")
	for i, variant := range report.TitleVariants {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, variant))
	}

	return sb.String()
}

// WriteReportFile writes the markdown report into outputDir, naming the
// file by date. Returns the written path.
func WriteReportFile(result *core.AnalysisResult, requestTitle, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "reports"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filename := fmt.Sprintf("seo_report_%s.md", time.Now().UTC().Format("2006-01-02_150405"))
	filePath := filepath.Join(outputDir, filename)

	content := MarkdownReport(result, requestTitle)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}

	return filePath, nil
}

// TerminalSummary renders a compact styled summary for CLI output.
func TerminalSummary(result *core.AnalysisResult, requestTitle string) string {
	report := result.Data
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("SEO Analysis: "+requestTitle) + "\n\n")
	sb.WriteString(labelStyle.Render("Optimized title: ") + report.OptimizedMetadata.Title + "\n")
	sb.WriteString(labelStyle.Render("Overall score:   ") + scoreStyle.Render(fmt.Sprintf("%d/100", report.SeoScoreBreakdown.OverallScore)) + "\n")
	sb.WriteString(labelStyle.Render("Competition:     ") + string(result.CompetitionTier))
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%d competitors, avg %d views)", len(result.Competitors), result.AverageViews)) + "\n")

	if len(report.TitleVariants) > 0 {
		sb.WriteString("\n" + labelStyle.Render("Title variants:") + "\n")
		for _, variant := range report.TitleVariants {
			sb.WriteString("  - " + variant + "\n")
		}
	}

	return sb.String()
}

func writeList(sb *strings.Builder, label string, items []string) {
	sb.WriteString(fmt.Sprintf("**%s:**\n\n", label))
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	sb.WriteString("\n")
}
