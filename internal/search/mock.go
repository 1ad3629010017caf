package search

import (
	"context"
)

// MockProvider implements Provider for testing purposes
type MockProvider struct {
	name    string
	results []VideoResult
	err     error
}

// NewMockProvider creates a new mock search provider
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		results: []VideoResult{
			{
				Title:     "Example Video 1",
				Channel:   "Example Channel",
				ViewsText: "1,234 views",
				URL:       "https://www.youtube.com/watch?v=mock1",
			},
			{
				Title:     "Example Video 2",
				Channel:   "Another Channel",
				ViewsText: "56,789 views",
				URL:       "https://www.youtube.com/watch?v=mock2",
			},
			{
				Title:     "Example Video 3",
				Channel:   "Third Channel",
				ViewsText: "101 views",
				URL:       "https://www.youtube.com/watch?v=mock3",
			},
		},
	}
}

// GetName returns the name of this provider
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the configured mock results or error
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]VideoResult, error) {
	if m.err != nil {
		return nil, m.err
	}

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > len(m.results) {
		maxResults = len(m.results)
	}

	results := make([]VideoResult, maxResults)
	copy(results, m.results[:maxResults])
	return results, nil
}

// SetResults allows customization of mock results for testing
func (m *MockProvider) SetResults(results []VideoResult) {
	m.results = results
}

// SetError makes every Search call fail with err
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// SetName allows customization of provider name for testing
func (m *MockProvider) SetName(name string) {
	m.name = name
}
