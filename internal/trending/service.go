package trending

import (
	"context"
	"fmt"
	"time"

	"github.com/pep299/socialspy/internal/metrics"
	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/reddit"
)

// ListingFetcher fetches a page of an upstream hot listing
type ListingFetcher interface {
	FetchHot(ctx context.Context, q reddit.Query) (*reddit.Listing, error)
}

// Config carries the proxy's default query parameters
type Config struct {
	DefaultSubreddit string
	DefaultLimit     string
	DefaultAfter     string
}

// DefaultConfig matches the proxy's documented defaults
func DefaultConfig() Config {
	return Config{
		DefaultSubreddit: "trending",
		DefaultLimit:     "25",
	}
}

type Service struct {
	fetcher  ListingFetcher
	config   Config
	defaults ItemDefaults
}

func NewService(fetcher ListingFetcher, config Config) *Service {
	return &Service{
		fetcher:  fetcher,
		config:   config,
		defaults: RedditDefaults,
	}
}

// Query fills empty parameters from the configured defaults
func (s *Service) Query(subreddit, limit, after string) reddit.Query {
	if subreddit == "" {
		subreddit = s.config.DefaultSubreddit
	}
	if limit == "" {
		limit = s.config.DefaultLimit
	}
	if after == "" {
		after = s.config.DefaultAfter
	}
	return reddit.Query{Subreddit: subreddit, Limit: limit, After: after}
}

// Fetch issues one upstream request and normalizes the listing
func (s *Service) Fetch(ctx context.Context, q reddit.Query) (*model.TrendingResponse, error) {
	start := time.Now()
	listing, err := s.fetcher.FetchHot(ctx, q)
	metrics.UpstreamDuration.WithLabelValues(model.PlatformReddit).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", q.Subreddit, err)
	}

	return Normalize(listing, s.defaults), nil
}
