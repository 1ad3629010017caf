package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tubelens/internal/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeDataProvider implements Provider using the YouTube Data API v3.
// It needs two calls per search: Search.List only returns snippets, so
// view counts come from a follow-up Videos.List on the matched IDs.
type YouTubeDataProvider struct {
	service *youtube.Service
}

// NewYouTubeDataProvider creates a provider backed by the YouTube Data API
func NewYouTubeDataProvider(apiKey string) (*YouTubeDataProvider, error) {
	service, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &YouTubeDataProvider{service: service}, nil
}

// GetName returns the name of this provider
func (y *YouTubeDataProvider) GetName() string {
	return "YouTube Data API"
}

// Search performs a video search using the YouTube Data API
func (y *YouTubeDataProvider) Search(ctx context.Context, query string, config Config) ([]VideoResult, error) {
	maxResults := int64(config.MaxResults)
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 50
	}

	searchCall := y.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(maxResults)

	searchResponse, err := searchCall.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: YouTube search failed: %v", ErrProviderUnavailable, err)
	}
	if searchResponse.Items == nil {
		return nil, ErrNoResults
	}

	var videoIDs []string
	for _, item := range searchResponse.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return []VideoResult{}, nil
	}

	videosCall := y.service.Videos.List([]string{"snippet", "statistics"}).
		Id(strings.Join(videoIDs, ","))

	videosResponse, err := videosCall.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: YouTube video lookup failed: %v", ErrProviderUnavailable, err)
	}

	// Videos.List does not guarantee request order; index by ID and emit in
	// search order so ranking survives the second call.
	byID := make(map[string]*youtube.Video, len(videosResponse.Items))
	for _, item := range videosResponse.Items {
		byID[item.Id] = item
	}

	results := make([]VideoResult, 0, len(videoIDs))
	for _, id := range videoIDs {
		item, ok := byID[id]
		if !ok || item.Snippet == nil {
			continue
		}

		result := VideoResult{
			Title:         item.Snippet.Title,
			Channel:       item.Snippet.ChannelTitle,
			URL:           fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
			PublishedText: item.Snippet.PublishedAt,
		}
		if item.Statistics != nil {
			result.ViewsText = strconv.FormatUint(item.Statistics.ViewCount, 10) + " views"
		}
		results = append(results, result)
	}

	logger.Info("YouTube Data API search completed", "query", query, "results_found", len(results))

	return results, nil
}
