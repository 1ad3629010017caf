package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"tubelens/internal/logger"

	"github.com/PuerkitoBio/goquery"
)

var initialDataRe = regexp.MustCompile(`(?s)var ytInitialData\s*=\s*(\{.*?\});`)

// ScrapeProvider implements Provider by scraping the public results page.
// It needs no API key, which makes it the fallback when neither SerpAPI
// nor a YouTube Data key is configured, but it is the least stable option:
// the page embeds its results as a large JSON blob whose layout changes
// without notice.
type ScrapeProvider struct {
	client    *http.Client
	userAgent string
	rateLimit time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// NewScrapeProvider creates a new scraping provider. An empty userAgent
// falls back to a desktop browser string; the page serves a different
// (unparsable) shell to unknown agents.
func NewScrapeProvider(userAgent string) *ScrapeProvider {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	}
	return &ScrapeProvider{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: userAgent,
		rateLimit: 2 * time.Second, // Be respectful with rate limiting
	}
}

// GetName returns the name of this provider
func (p *ScrapeProvider) GetName() string {
	return "Scrape"
}

// Search fetches the results page and recovers video entries from the
// embedded initial-data JSON.
func (p *ScrapeProvider) Search(ctx context.Context, query string, config Config) ([]VideoResult, error) {
	if err := p.throttle(ctx); err != nil {
		return nil, fmt.Errorf("scrape request aborted: %w", err)
	}
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: results page returned status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var initialData string
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if m := initialDataRe.FindStringSubmatch(s.Text()); m != nil {
			initialData = m[1]
			return false
		}
		return true
	})
	if initialData == "" {
		return nil, fmt.Errorf("%w: no initial data found on results page", ErrProviderUnavailable)
	}

	var tree any
	if err := json.Unmarshal([]byte(initialData), &tree); err != nil {
		return nil, fmt.Errorf("failed to parse initial data: %w", err)
	}

	var results []VideoResult
	collectVideoRenderers(tree, &results, config.MaxResults)
	if results == nil {
		return nil, ErrNoResults
	}

	logger.Info("Scrape video search completed", "query", query, "results_found", len(results))

	return results, nil
}

// throttle claims the next available call slot and waits for it, or
// returns early when the context is done.
func (p *ScrapeProvider) throttle(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	wait := p.rateLimit - now.Sub(p.lastCall)
	if wait < 0 {
		wait = 0
	}
	p.lastCall = now.Add(wait)
	p.mu.Unlock()

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

// collectVideoRenderers walks the initial-data tree for videoRenderer
// nodes. The path to the result list moves around between page revisions,
// so a full walk beats hard-coding it.
func collectVideoRenderers(node any, out *[]VideoResult, max int) {
	if max > 0 && len(*out) >= max {
		return
	}

	switch v := node.(type) {
	case map[string]any:
		if renderer, ok := v["videoRenderer"].(map[string]any); ok {
			if result, ok := videoFromRenderer(renderer); ok {
				*out = append(*out, result)
			}
			return
		}
		for _, child := range v {
			collectVideoRenderers(child, out, max)
		}
	case []any:
		for _, child := range v {
			collectVideoRenderers(child, out, max)
		}
	}
}

func videoFromRenderer(renderer map[string]any) (VideoResult, bool) {
	result := VideoResult{
		Title:         runsText(renderer["title"]),
		Channel:       runsText(renderer["ownerText"]),
		ViewsText:     simpleText(renderer["viewCountText"]),
		PublishedText: simpleText(renderer["publishedTimeText"]),
	}
	if id, ok := renderer["videoId"].(string); ok && id != "" {
		result.URL = "https://www.youtube.com/watch?v=" + id
	}
	if result.Title == "" && result.Channel == "" {
		return VideoResult{}, false
	}
	return result, true
}

// runsText joins the text runs of a {"runs":[{"text":...}]} node.
func runsText(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	runs, ok := m["runs"].([]any)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, run := range runs {
		if rm, ok := run.(map[string]any); ok {
			if text, ok := rm["text"].(string); ok {
				sb.WriteString(text)
			}
		}
	}
	return sb.String()
}

// simpleText extracts the text of a {"simpleText":...} node.
func simpleText(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m["simpleText"].(string)
	return s
}
