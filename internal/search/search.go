package search

import (
	"context"
	"time"
)

// Provider defines the unified interface for video search providers.
// Implementations return raw, provider-shaped results; cleaning the noisy
// view-count text into numbers is the aggregator's job, not the provider's.
type Provider interface {
	// Search performs a video search with configuration
	Search(ctx context.Context, query string, config Config) ([]VideoResult, error)

	// GetName returns the name of the search provider
	GetName() string
}

// Config holds configuration for search requests
type Config struct {
	MaxResults int           // Maximum number of results to return
	Timeout    time.Duration // Per-call budget applied by HTTP providers
	Language   string        // Language preference (e.g., "en", "es")
}

// VideoResult represents a unified video search result. ViewsText is the
// provider's human-formatted view count (e.g. "1,234 views") and may be
// empty when the provider omits it.
type VideoResult struct {
	Title         string `json:"title"`
	Channel       string `json:"channel"`
	ViewsText     string `json:"views_text"`
	URL           string `json:"url,omitempty"`
	PublishedText string `json:"published_text,omitempty"`
}

// ProviderType represents the type of search provider
type ProviderType string

const (
	ProviderTypeSerpAPI ProviderType = "serpapi"
	ProviderTypeYouTube ProviderType = "youtube"
	ProviderTypeScrape  ProviderType = "scrape"
	ProviderTypeMock    ProviderType = "mock"
)

// ProviderFactory creates search providers based on type and configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new provider factory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// CreateProvider creates a search provider of the specified type
func (f *ProviderFactory) CreateProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeSerpAPI:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(apiKey), nil
	case ProviderTypeYouTube:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewYouTubeDataProvider(apiKey)
	case ProviderTypeScrape:
		return NewScrapeProvider(config["user_agent"]), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// GetAvailableProviders returns a list of available provider types
func (f *ProviderFactory) GetAvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderTypeSerpAPI,
		ProviderTypeYouTube,
		ProviderTypeScrape,
		ProviderTypeMock,
	}
}
