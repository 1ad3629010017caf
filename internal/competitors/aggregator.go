// Package competitors turns noisy provider search results into the clean
// competitor summary the rest of the pipeline consumes.
package competitors

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tubelens/internal/core"
	"tubelens/internal/logger"
	"tubelens/internal/search"
)

// MaxCompetitors caps how many cleaned entries a summary carries. Entries
// beyond the cap are discarded in provider order.
const MaxCompetitors = 10

// Aggregator runs the competitor search and cleans its results.
type Aggregator struct {
	provider search.Provider
	config   search.Config
}

// NewAggregator creates an aggregator over the given provider.
func NewAggregator(provider search.Provider, config search.Config) *Aggregator {
	if config.MaxResults <= 0 {
		config.MaxResults = MaxCompetitors
	}
	return &Aggregator{provider: provider, config: config}
}

// Aggregate searches for the title and reduces the results to a summary.
// Entries whose view count does not resolve to a positive integer are
// dropped; the survivors keep provider order and are capped at
// MaxCompetitors. A provider failure surfaces as an upstream_unavailable
// stage error; an empty result set does not, it just yields an empty
// summary with TierLow.
func (a *Aggregator) Aggregate(ctx context.Context, title string) (*core.CompetitorSummary, error) {
	results, err := a.provider.Search(ctx, title, a.config)
	if err != nil {
		return nil, &core.StageError{
			Kind:    core.ErrKindUpstreamUnavailable,
			Message: fmt.Sprintf("video search failed: %v", err),
		}
	}

	summary := Summarize(results)

	logger.Info("Competitor aggregation completed",
		"provider", a.provider.GetName(),
		"raw_results", len(results),
		"competitors", len(summary.Competitors),
		"average_views", summary.AverageViews,
		"tier", string(summary.CompetitionTier))

	return summary, nil
}

// Summarize cleans raw provider results into a CompetitorSummary. It is
// pure so the reduction can be tested without a provider.
func Summarize(results []search.VideoResult) *core.CompetitorSummary {
	competitors := make([]core.CompetitorVideo, 0, MaxCompetitors)
	var total int64

	for _, result := range results {
		if len(competitors) >= MaxCompetitors {
			break
		}

		views := ParseViewCount(result.ViewsText)
		if views <= 0 {
			continue
		}

		video := core.CompetitorVideo{
			Title:     result.Title,
			Channel:   result.Channel,
			ViewCount: views,
		}
		if video.Title == "" {
			video.Title = "Unknown"
		}
		if video.Channel == "" {
			video.Channel = "Unknown"
		}

		competitors = append(competitors, video)
		total += views
	}

	summary := &core.CompetitorSummary{
		Competitors:     competitors,
		CompetitionTier: core.TierLow,
	}
	if len(competitors) > 0 {
		summary.AverageViews = int64(math.Round(float64(total) / float64(len(competitors))))
		summary.CompetitionTier = core.TierForAverageViews(summary.AverageViews)
	}
	return summary
}

// ParseViewCount extracts the integer view count from a provider's
// human-formatted text ("1,234 views", "1.234 visualizaciones") by keeping
// only the digits. Returns 0 when no digits survive or the text is empty.
func ParseViewCount(text string) int64 {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		// Only overflow can land here; treat an absurd count as noise.
		return 0
	}
	return n
}
