package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"tubelens/internal/logger"
)

// SerpAPIProvider implements Provider using SerpAPI's YouTube engine.
// One instance is shared across requests; lastCall is guarded by mu.
type SerpAPIProvider struct {
	apiKey    string
	baseURL   string
	client    *http.Client
	rateLimit time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// NewSerpAPIProvider creates a new SerpAPI video search provider
func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey:  apiKey,
		baseURL: "https://serpapi.com/search",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimit: 1 * time.Second, // SerpAPI has generous rate limits
	}
}

// GetName returns the name of this provider
func (s *SerpAPIProvider) GetName() string {
	return "SerpAPI"
}

// serpVideoResult mirrors one entry of SerpAPI's video_results. Views is
// a plain number on most responses but some engines return it as text,
// so it is decoded loosely.
type serpVideoResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Channel struct {
		Name string `json:"name"`
	} `json:"channel"`
	PublishedDate string          `json:"published_date"`
	Views         json.RawMessage `json:"views"`
}

// Search performs a video search using SerpAPI's YouTube engine
func (s *SerpAPIProvider) Search(ctx context.Context, query string, config Config) ([]VideoResult, error) {
	if err := s.throttle(ctx); err != nil {
		return nil, fmt.Errorf("SerpAPI request aborted: %w", err)
	}
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("engine", "youtube")
	params.Set("search_query", query)
	params.Set("api_key", s.apiKey)
	if config.Language != "" {
		params.Set("hl", config.Language)
	}

	fullURL := s.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SerpAPI request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SerpAPI request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: SerpAPI request failed with status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var apiResponse struct {
		VideoResults []serpVideoResult `json:"video_results"`
		Error        string            `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse SerpAPI response: %w", err)
	}

	if apiResponse.Error != "" {
		return nil, fmt.Errorf("%w: SerpAPI error: %s", ErrProviderUnavailable, apiResponse.Error)
	}
	if apiResponse.VideoResults == nil {
		return nil, ErrNoResults
	}

	results := make([]VideoResult, 0, len(apiResponse.VideoResults))
	for i, item := range apiResponse.VideoResults {
		if config.MaxResults > 0 && i >= config.MaxResults {
			break
		}
		results = append(results, VideoResult{
			Title:         item.Title,
			Channel:       item.Channel.Name,
			ViewsText:     viewsText(item.Views),
			URL:           item.Link,
			PublishedText: item.PublishedDate,
		})
	}

	logger.Info("SerpAPI video search completed", "query", query, "results_found", len(results))

	return results, nil
}

// throttle claims the next available call slot and waits for it, or
// returns early when the context is done.
func (s *SerpAPIProvider) throttle(ctx context.Context) error {
	s.mu.Lock()
	now := time.Now()
	wait := s.rateLimit - now.Sub(s.lastCall)
	if wait < 0 {
		wait = 0
	}
	s.lastCall = now.Add(wait)
	s.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// viewsText renders the loosely-typed views field as human-formatted text.
func viewsText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10) + " views"
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return ""
}
