package mocks

import (
	"context"
	"sync"

	"github.com/pep299/socialspy/internal/reddit"
)

// Mock Reddit listing fetcher
type MockListingFetcher struct {
	Listing *reddit.Listing
	Err     error

	mu      sync.Mutex
	queries []reddit.Query
}

func (m *MockListingFetcher) FetchHot(ctx context.Context, q reddit.Query) (*reddit.Listing, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Listing == nil {
		return &reddit.Listing{Kind: "Listing"}, nil
	}
	return m.Listing, nil
}

// Queries returns the queries received so far
func (m *MockListingFetcher) Queries() []reddit.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]reddit.Query(nil), m.queries...)
}
