package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Listing is the envelope returned by Reddit's hot.json endpoint
type Listing struct {
	Kind string      `json:"kind"`
	Data ListingData `json:"data"`
}

type ListingData struct {
	After    *string `json:"after"`
	Dist     int     `json:"dist"`
	Children []Child `json:"children"`
}

type Child struct {
	Kind string `json:"kind"`
	Data Post   `json:"data"`
}

// Post holds the subset of t3 fields used by the proxy
type Post struct {
	ID                    string  `json:"id"`
	Title                 string  `json:"title"`
	Author                string  `json:"author"`
	Subreddit             string  `json:"subreddit"`
	SubredditNamePrefixed string  `json:"subreddit_name_prefixed"`
	Score                 int     `json:"score"`
	Ups                   int     `json:"ups"`
	NumComments           int     `json:"num_comments"`
	UpvoteRatio           float64 `json:"upvote_ratio"`
	Thumbnail             string  `json:"thumbnail"`
	Permalink             string  `json:"permalink"`
	CreatedUTC            float64 `json:"created_utc"`
}

// Query selects a page of a subreddit's hot listing
type Query struct {
	Subreddit string
	Limit     string
	After     string
}

// StatusError is returned when Reddit answers with a non-2xx status
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Reddit API returned %d: %s", e.StatusCode, e.StatusText)
}

// Client handles Reddit listing requests
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new Reddit client
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// HotURL builds the hot listing URL for the query
func (c *Client) HotURL(q Query) string {
	values := url.Values{}
	values.Set("limit", q.Limit)
	if q.After != "" {
		values.Set("after", q.After)
	}
	return fmt.Sprintf("%s/r/%s/hot.json?%s", c.baseURL, url.PathEscape(q.Subreddit), values.Encode())
}

// FetchHot fetches one page of a subreddit's hot listing
func (c *Client) FetchHot(ctx context.Context, q Query) (*Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.HotURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	var listing Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}

	return &listing, nil
}

// statusText returns the reason phrase without the leading code
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
