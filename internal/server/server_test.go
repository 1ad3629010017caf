package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tubelens/internal/analyze"
	"tubelens/internal/competitors"
	"tubelens/internal/config"
	"tubelens/internal/core"
	"tubelens/internal/search"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const validCompletion = `{
	"optimizedMetadata": {"title": "T", "description": "D", "tags": ["t"], "hashtags": ["#h"]},
	"keywordResearch": {"primaryKeywords": ["k"], "longTailKeywords": ["l"], "searchIntent": "informational", "difficulty": "Low"},
	"competitorAnalysis": {"commonPatterns": [], "contentGaps": [], "differentiators": []},
	"thumbnailOptimizer": {"concept": "c", "textOverlay": "o", "colorScheme": "s", "composition": "x"},
	"seoScoreBreakdown": {"titleScore": 80, "descriptionScore": 70, "tagsScore": 60, "hashtagsScore": 50, "overallScore": 68},
	"trendsAndTopics": {"currentTrends": [], "relatedTopics": [], "seasonalOpportunities": []},
	"titleVariants": ["a", "b", "c", "d", "e"]
}`

func newTestServer(completer analyze.Completer) *Server {
	provider := search.NewMockProvider()
	aggregator := competitors.NewAggregator(provider, search.Config{MaxResults: 10})
	analyzer := analyze.NewAnalyzer(aggregator, completer)
	return New(analyzer, config.Server{Host: "127.0.0.1", Port: 0})
}

func postAnalyze(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubCompleter{response: validCompletion})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	s := newTestServer(&stubCompleter{response: validCompletion})

	rec := postAnalyze(t, s, `{"title": "Sharpening chisels by hand"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Analysis-ID") == "" {
		t.Error("Expected analysis ID header")
	}

	var result core.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("Expected success status, got %s", result.Status)
	}
	if result.Data == nil || result.Data.SeoScoreBreakdown.OverallScore != 68 {
		t.Error("Expected report data in response")
	}
}

func TestAnalyzeEndpointRequiresTitle(t *testing.T) {
	s := newTestServer(&stubCompleter{response: validCompletion})

	rec := postAnalyze(t, s, `{"title": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing title, got %d", rec.Code)
	}
}

func TestAnalyzeEndpointRejectsBadJSON(t *testing.T) {
	s := newTestServer(&stubCompleter{response: validCompletion})

	rec := postAnalyze(t, s, `{"title": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestAnalyzeEndpointUpstreamFailure(t *testing.T) {
	provider := search.NewMockProvider()
	provider.SetError(search.ErrProviderUnavailable)
	aggregator := competitors.NewAggregator(provider, search.Config{MaxResults: 10})
	analyzer := analyze.NewAnalyzer(aggregator, &stubCompleter{response: validCompletion})
	s := New(analyzer, config.Server{})

	rec := postAnalyze(t, s, `{"title": "test"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected 502 for search failure, got %d", rec.Code)
	}

	var envelope core.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if envelope.Status != "error" {
		t.Errorf("Expected error status, got %s", envelope.Status)
	}
}

func TestAnalyzeEndpointCompletionTimeout(t *testing.T) {
	s := newTestServer(&stubCompleter{err: &core.StageError{
		Kind:    core.ErrKindCompletionTimeout,
		Message: "completion request failed: context deadline exceeded",
	}})

	rec := postAnalyze(t, s, `{"title": "test"}`)
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("Expected 504 for completion timeout, got %d", rec.Code)
	}
}

func TestAnalyzeEndpointUnparsableCompletion(t *testing.T) {
	s := newTestServer(&stubCompleter{response: "not json"})

	rec := postAnalyze(t, s, `{"title": "test"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for unparsable completion, got %d", rec.Code)
	}

	var envelope core.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if envelope.Raw != "not json" {
		t.Errorf("Expected raw completion text in envelope, got %q", envelope.Raw)
	}
}
