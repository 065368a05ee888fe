package mocks

import (
	"context"
	"sync"

	"github.com/pep299/socialspy/internal/summarizer"
)

// Mock summarization backend
type MockSummarizer struct {
	Response *summarizer.Response
	Err      error

	// Release, when set, blocks Summarize until it is closed or receives
	Release chan struct{}
	// Started, when set, receives once per call before blocking
	Started chan struct{}

	mu   sync.Mutex
	urls []string
}

func (m *MockSummarizer) Summarize(ctx context.Context, url string) (*summarizer.Response, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()

	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.Release != nil {
		select {
		case <-m.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response == nil {
		return &summarizer.Response{}, nil
	}
	return m.Response, nil
}

// Calls returns the URLs submitted so far
func (m *MockSummarizer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}

// Mock clipboard
type MockClipboard struct {
	Err error

	mu   sync.Mutex
	text string
}

func (m *MockClipboard) WriteText(ctx context.Context, text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

// Text returns the last copied text
func (m *MockClipboard) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
