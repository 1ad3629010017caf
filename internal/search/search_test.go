package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestProviderTypeConstants(t *testing.T) {
	expectedTypes := map[ProviderType]string{
		ProviderTypeSerpAPI: "serpapi",
		ProviderTypeYouTube: "youtube",
		ProviderTypeScrape:  "scrape",
		ProviderTypeMock:    "mock",
	}

	for providerType, expectedValue := range expectedTypes {
		if string(providerType) != expectedValue {
			t.Errorf("Expected %s to be %s, got %s", providerType, expectedValue, string(providerType))
		}
	}
}

func TestCreateMockProvider(t *testing.T) {
	factory := NewProviderFactory()

	provider, err := factory.CreateProvider(ProviderTypeMock, map[string]string{})
	if err != nil {
		t.Fatalf("Expected no error creating mock provider, got %v", err)
	}
	if provider == nil {
		t.Fatal("Expected non-nil provider")
	}
	if provider.GetName() != "Mock" {
		t.Errorf("Expected provider name to be 'Mock', got %s", provider.GetName())
	}
}

func TestCreateSerpAPIProviderMissingAPIKey(t *testing.T) {
	factory := NewProviderFactory()

	provider, err := factory.CreateProvider(ProviderTypeSerpAPI, map[string]string{})
	if err == nil {
		t.Error("Expected error when creating SerpAPI provider without API key")
	}
	if provider != nil {
		t.Error("Expected nil provider when creation fails")
	}
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestCreateScrapeProvider(t *testing.T) {
	factory := NewProviderFactory()

	provider, err := factory.CreateProvider(ProviderTypeScrape, map[string]string{})
	if err != nil {
		t.Fatalf("Expected no error creating scrape provider, got %v", err)
	}
	if provider.GetName() != "Scrape" {
		t.Errorf("Expected provider name to be 'Scrape', got %s", provider.GetName())
	}
}

func TestCreateUnsupportedProvider(t *testing.T) {
	factory := NewProviderFactory()

	_, err := factory.CreateProvider(ProviderType("bing"), map[string]string{})
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("Expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestMockProviderRespectsMaxResults(t *testing.T) {
	provider := NewMockProvider()

	results, err := provider.Search(context.Background(), "test", Config{MaxResults: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestMockProviderError(t *testing.T) {
	provider := NewMockProvider()
	provider.SetError(ErrProviderUnavailable)

	_, err := provider.Search(context.Background(), "test", Config{MaxResults: 5})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable, got %v", err)
	}
}

func TestSerpAPIProviderParsesVideoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("engine"); got != "youtube" {
			t.Errorf("Expected engine=youtube, got %s", got)
		}
		if got := r.URL.Query().Get("search_query"); got != "woodworking" {
			t.Errorf("Expected search_query=woodworking, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"video_results": [
				{"title": "First", "link": "https://youtube.com/watch?v=1", "channel": {"name": "Alpha"}, "views": 1234},
				{"title": "Second", "channel": {"name": "Beta"}, "views": "56,789 views"},
				{"title": "Third", "channel": {"name": "Gamma"}}
			]
		}`))
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL

	results, err := provider.Search(context.Background(), "woodworking", Config{MaxResults: 10})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[0].ViewsText != "1234 views" {
		t.Errorf("Expected numeric views formatted as '1234 views', got %q", results[0].ViewsText)
	}
	if results[1].ViewsText != "56,789 views" {
		t.Errorf("Expected string views passed through, got %q", results[1].ViewsText)
	}
	if results[2].ViewsText != "" {
		t.Errorf("Expected missing views to be empty, got %q", results[2].ViewsText)
	}
	if results[0].Channel != "Alpha" {
		t.Errorf("Expected channel 'Alpha', got %q", results[0].Channel)
	}
}

func TestSerpAPIProviderConcurrentSearches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"video_results": [{"title": "A", "channel": {"name": "B"}, "views": 1}]}`))
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL
	provider.rateLimit = time.Millisecond

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := provider.Search(context.Background(), "test", Config{MaxResults: 5})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Concurrent search failed: %v", err)
		}
	}
}

func TestSerpAPIProviderThrottleHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"video_results": [{"title": "A", "channel": {"name": "B"}, "views": 1}]}`))
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL
	provider.rateLimit = time.Hour

	if _, err := provider.Search(context.Background(), "first", Config{MaxResults: 5}); err != nil {
		t.Fatalf("First search failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := provider.Search(ctx, "second", Config{MaxResults: 5})
	if err == nil {
		t.Fatal("Expected error for cancelled context during throttle wait")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Expected throttle wait to abort promptly on cancellation")
	}
}

func TestSerpAPIProviderAppliesConfigTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"video_results": []}`))
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL

	_, err := provider.Search(context.Background(), "slow", Config{MaxResults: 5, Timeout: 10 * time.Millisecond})
	if err == nil {
		t.Fatal("Expected error when response exceeds configured timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

func TestSerpAPIProviderMissingResultsList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"search_metadata": {"status": "Success"}}`))
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL

	_, err := provider.Search(context.Background(), "anything", Config{MaxResults: 10})
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults for missing video_results, got %v", err)
	}
}

func TestSerpAPIProviderUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewSerpAPIProvider("test-key")
	provider.baseURL = server.URL

	_, err := provider.Search(context.Background(), "anything", Config{MaxResults: 10})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("Expected ErrProviderUnavailable for 500, got %v", err)
	}
}
