// Package tui is an interactive section browser over a finished report.
package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tubelens/internal/core"
)

// section is one browsable report section: a display name and its
// rendered body.
type section struct {
	name string
	body string
}

type model struct {
	requestTitle string
	sections     []section
	selectedIdx  int
	width        int
	height       int
	quitting     bool
}

// newModel builds the browser model from a finished analysis.
func newModel(result *core.AnalysisResult, requestTitle string) model {
	return model{
		requestTitle: requestTitle,
		sections:     buildSections(result),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.sections)-1 {
				m.selectedIdx++
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Quitting...\n"
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(m.width/3 - 4)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(2*m.width/3 - 4)
	titleStyle := lipgloss.NewStyle().Bold(true)

	var list strings.Builder
	list.WriteString(titleStyle.Render(m.requestTitle) + "\n\n")
	for i, s := range m.sections {
		cursor := " "
		if i == m.selectedIdx {
			cursor = ">"
		}
		list.WriteString(fmt.Sprintf("%s %s\n", cursor, s.name))
	}

	detail := "No section selected."
	if m.selectedIdx < len(m.sections) {
		detail = m.sections[m.selectedIdx].body
	}

	leftPane := listStyle.Render(list.String())
	rightPane := detailStyle.Render(detail)

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	help := "\n\n[up/k] Up | [down/j] Down | [q] Quit"

	return docStyle.Render(mainContent + help)
}

// Start runs the browser over the given result until the user quits.
func Start(result *core.AnalysisResult, requestTitle string) {
	p := tea.NewProgram(newModel(result, requestTitle), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func buildSections(result *core.AnalysisResult) []section {
	report := result.Data

	var competitors strings.Builder
	if len(result.Competitors) == 0 {
		competitors.WriteString("No competitor data available.")
	} else {
		for i, video := range result.Competitors {
			competitors.WriteString(fmt.Sprintf("%d. %s\n   %s, %d views\n", i+1, video.Title, video.Channel, video.ViewCount))
		}
		competitors.WriteString(fmt.Sprintf("\nAverage: %d views (%s competition)", result.AverageViews, result.CompetitionTier))
	}

	return []section{
		{
			name: "Metadata",
			body: fmt.Sprintf("Title: %s\n\n%s\n\nTags: %s\n\nHashtags: %s",
				report.OptimizedMetadata.Title,
				report.OptimizedMetadata.Description,
				strings.Join(report.OptimizedMetadata.Tags, ", "),
				strings.Join(report.OptimizedMetadata.Hashtags, " ")),
		},
		{
			name: "Keywords",
			body: fmt.Sprintf("Primary:\n%s\n\nLong-tail:\n%s\n\nIntent: %s\nDifficulty: %s",
				bulleted(report.KeywordResearch.PrimaryKeywords),
				bulleted(report.KeywordResearch.LongTailKeywords),
				report.KeywordResearch.SearchIntent,
				report.KeywordResearch.Difficulty),
		},
		{
			name: "Competitors",
			body: competitors.String(),
		},
		{
			name: "Competitor Analysis",
			body: fmt.Sprintf("Common patterns:\n%s\n\nContent gaps:\n%s\n\nDifferentiators:\n%s",
				bulleted(report.CompetitorAnalysis.CommonPatterns),
				bulleted(report.CompetitorAnalysis.ContentGaps),
				bulleted(report.CompetitorAnalysis.Differentiators)),
		},
		{
			name: "Thumbnail",
			body: fmt.Sprintf("Concept: %s\n\nText overlay: %s\nColor scheme: %s\nComposition: %s",
				report.ThumbnailOptimizer.Concept,
				report.ThumbnailOptimizer.TextOverlay,
				report.ThumbnailOptimizer.ColorScheme,
				report.ThumbnailOptimizer.Composition),
		},
		{
			name: "Scores",
			body: fmt.Sprintf("Title:       %3d\nDescription: %3d\nTags:        %3d\nHashtags:    %3d\n\nOverall:     %3d",
				report.SeoScoreBreakdown.TitleScore,
				report.SeoScoreBreakdown.DescriptionScore,
				report.SeoScoreBreakdown.TagsScore,
				report.SeoScoreBreakdown.HashtagsScore,
				report.SeoScoreBreakdown.OverallScore),
		},
		{
			name: "Trends",
			body: fmt.Sprintf("Current trends:\n%s\n\nRelated topics:\n%s\n\nSeasonal:\n%s",
				bulleted(report.TrendsAndTopics.CurrentTrends),
				bulleted(report.TrendsAndTopics.RelatedTopics),
				bulleted(report.TrendsAndTopics.SeasonalOpportunities)),
		},
		{
			name: "Title Variants",
			body: bulleted(report.TitleVariants),
		},
	}
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "- none"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
