package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pep299/socialspy/internal/metrics"
	"github.com/pep299/socialspy/internal/mocks"
	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/reddit"
	"github.com/pep299/socialspy/internal/trending"
)

func newTrendingHandler(fetcher trending.ListingFetcher) *Trending {
	return NewTrending(trending.NewService(fetcher, trending.DefaultConfig()))
}

func TestTrendingHandler_Preflight(t *testing.T) {
	fetcher := &mocks.MockListingFetcher{}
	handler := newTrendingHandler(fetcher)

	req := httptest.NewRequest(http.MethodOptions, "/?subreddit=golang&limit=5&after=t3_x", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", w.Body.String())
	}
	if len(fetcher.Queries()) != 0 {
		t.Error("Expected no upstream call for pre-flight")
	}
	assertCORS(t, w)
}

func TestTrendingHandler_Success(t *testing.T) {
	after := "t3_page2"
	fetcher := &mocks.MockListingFetcher{
		Listing: &reddit.Listing{Data: reddit.ListingData{
			After: &after,
			Dist:  2,
			Children: []reddit.Child{
				{Kind: "t3", Data: reddit.Post{ID: "one", Title: "First", Author: "alice", Ups: 5}},
				{Kind: "t3", Data: reddit.Post{ID: "two"}},
			},
		}},
	}
	handler := newTrendingHandler(fetcher)

	req := httptest.NewRequest(http.MethodGet, "/?subreddit=golang&limit=2", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	assertCORS(t, w)

	var resp model.TrendingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].ID != "one" || resp.Items[1].ID != "two" {
		t.Errorf("Expected upstream order to be preserved, got %s,%s", resp.Items[0].ID, resp.Items[1].ID)
	}
	if resp.Items[1].Creator != "Unknown" {
		t.Errorf("Expected creator default 'Unknown', got '%s'", resp.Items[1].Creator)
	}
	if resp.Items[1].Statistics.Upvotes != 0 {
		t.Errorf("Expected upvotes default 0, got %d", resp.Items[1].Statistics.Upvotes)
	}
	if resp.NextPageToken == nil || *resp.NextPageToken != "t3_page2" {
		t.Errorf("Expected next page token 't3_page2', got %v", resp.NextPageToken)
	}
	if resp.PageInfo.TotalResults != 2 {
		t.Errorf("Expected totalResults 2, got %d", resp.PageInfo.TotalResults)
	}

	queries := fetcher.Queries()
	if len(queries) != 1 || queries[0].Subreddit != "golang" || queries[0].Limit != "2" {
		t.Errorf("Unexpected upstream queries %+v", queries)
	}
}

func TestTrendingHandler_NullCursor(t *testing.T) {
	handler := newTrendingHandler(&mocks.MockListingFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	var raw map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if v, ok := raw["nextPageToken"]; !ok || v != nil {
		t.Errorf("Expected nextPageToken null, got %v", v)
	}
	items, ok := raw["items"].([]interface{})
	if !ok || len(items) != 0 {
		t.Errorf("Expected empty items array, got %v", raw["items"])
	}
}

func TestTrendingHandler_UpstreamStatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	client := reddit.NewClient(upstream.URL, "test-agent", 5*time.Second)
	handler := newTrendingHandler(client)

	req := httptest.NewRequest(http.MethodGet, "/?subreddit=doesnotexist", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	assertCORS(t, w)

	var raw map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	errMsg, _ := raw["error"].(string)
	if !strings.Contains(errMsg, "404") {
		t.Errorf("Expected error to contain '404', got '%s'", errMsg)
	}
	if errMsg != "Reddit API returned 404: Not Found" {
		t.Errorf("Unexpected error message '%s'", errMsg)
	}
	if items, ok := raw["items"].([]interface{}); !ok || len(items) != 0 {
		t.Errorf("Expected empty items array, got %v", raw["items"])
	}
	if v, ok := raw["nextPageToken"]; !ok || v != nil {
		t.Errorf("Expected nextPageToken null, got %v", v)
	}
}

func TestTrendingHandler_NetworkError(t *testing.T) {
	handler := newTrendingHandler(&mocks.MockListingFetcher{Err: errors.New("dial tcp: connection refused")})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	assertCORS(t, w)

	var resp model.TrendingError
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "connection refused") {
		t.Errorf("Expected network error message, got '%s'", resp.Error)
	}
}

func TestTrendingHandler_Metrics(t *testing.T) {
	count := func(outcome string) float64 {
		return testutil.ToFloat64(metrics.ProxyRequestsTotal.WithLabelValues(outcome))
	}
	preflight := count(metrics.OutcomePreflight)
	success := count(metrics.OutcomeSuccess)
	failed := count(metrics.OutcomeUpstreamError)

	ok := newTrendingHandler(&mocks.MockListingFetcher{})
	broken := newTrendingHandler(&mocks.MockListingFetcher{Err: errors.New("connection reset")})

	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodOptions, "/", nil))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/?subreddit=golang", nil))
	broken.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := count(metrics.OutcomePreflight) - preflight; got != 1 {
		t.Errorf("Expected 1 preflight request counted, got %v", got)
	}
	if got := count(metrics.OutcomeSuccess) - success; got != 2 {
		t.Errorf("Expected 2 successful requests counted, got %v", got)
	}
	if got := count(metrics.OutcomeUpstreamError) - failed; got != 1 {
		t.Errorf("Expected 1 upstream error counted, got %v", got)
	}
}

func assertCORS(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected Access-Control-Allow-Origin '*'")
	}
	if w.Header().Get("Access-Control-Allow-Headers") != "Content-Type" {
		t.Error("Expected Access-Control-Allow-Headers 'Content-Type'")
	}
	if w.Header().Get("Access-Control-Allow-Methods") != "GET, POST, OPTIONS" {
		t.Error("Expected Access-Control-Allow-Methods 'GET, POST, OPTIONS'")
	}
}
