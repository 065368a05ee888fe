package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Summarizer turns a video URL into a backend summary response
type Summarizer interface {
	Summarize(ctx context.Context, url string) (*Response, error)
}

// Request is the body POSTed to the summarization backend
type Request struct {
	URL string `json:"url"`
}

// Response is the backend payload. Every field is optional; absent
// fields decode to nil and are filled in by BuildResult.
type Response struct {
	Summary    *string  `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	Duration   *string  `json:"duration"`
	Sentiment  *string  `json:"sentiment"`
	Topics     []string `json:"topics"`
	Confidence *float64 `json:"confidence"`
}

// StatusError is returned when the backend answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("summarizer request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client handles summarization backend calls
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new summarization backend client
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Summarize posts url to the backend and decodes the response
func (c *Client) Summarize(ctx context.Context, url string) (*Response, error) {
	body, err := json.Marshal(Request{URL: url})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var summary Response
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &summary, nil
}
