package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ryosukesatoh/wp-monitor/internal/detector"
	"github.com/ryosukesatoh/wp-monitor/internal/retry"
)

func testSummarizer(ts *httptest.Server) *AnthropicSummarizer {
	return &AnthropicSummarizer{
		apiKey:      "test-key",
		model:       "claude-3-5-sonnet-latest",
		maxTokens:   600,
		baseURL:     ts.URL,
		client:      ts.Client(),
		retryConfig: retry.Config{MaxRetries: 0, BaseDelay: time.Millisecond},
	}
}

func sampleReport() *Report {
	return &Report{
		SiteURL: "https://example.com",
		Date:    time.Now(),
		Changes: []detector.Change{
			{ID: "10", Title: "Monitor Launch", Type: detector.ChangeNew, Modified: "2026-02-01T08:00:00"},
		},
	}
}

func TestSummarizeSendsPromptAndParsesResponse(t *testing.T) {
	var gotReq anthropicRequest
	var gotHeaders http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"Summary ready."},{"type":"text","text":"More detail."}]}`))
	}))
	defer ts.Close()

	got, err := testSummarizer(ts).Summarize(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if got != "Summary ready.\nMore detail." {
		t.Errorf("Expected joined text blocks, got %q", got)
	}
	if gotHeaders.Get("x-api-key") != "test-key" {
		t.Errorf("Expected api key header, got %q", gotHeaders.Get("x-api-key"))
	}
	if gotHeaders.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("Expected anthropic-version header, got %q", gotHeaders.Get("anthropic-version"))
	}
	if gotReq.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("Unexpected model: %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 600 {
		t.Errorf("Unexpected max_tokens: %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("Expected one user message, got %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "Monitor Launch") {
		t.Errorf("Expected prompt to mention the changed post, got:\n%s", gotReq.Messages[0].Content)
	}
}

func TestSummarizeAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad prompt"}}`))
	}))
	defer ts.Close()

	if _, err := testSummarizer(ts).Summarize(context.Background(), sampleReport()); err == nil {
		t.Fatal("Expected error for API failure")
	}
}

func TestSummarizeEmptyContentFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer ts.Close()

	if _, err := testSummarizer(ts).Summarize(context.Background(), sampleReport()); err == nil {
		t.Fatal("Expected error for empty content")
	}
}
