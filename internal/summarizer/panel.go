package summarizer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pep299/socialspy/internal/metrics"
	"github.com/pep299/socialspy/internal/model"
)

// User-facing panel messages
const (
	ValidationMessage = "Please enter a valid YouTube URL"
	FailureMessage    = "Failed to generate summary. Please try again."
)

// CopiedDuration is how long the copied indicator stays on
const CopiedDuration = 2 * time.Second

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Snapshot is a point-in-time copy of the panel
type Snapshot struct {
	Input        string
	State        State
	Error        string
	Result       *model.SummaryResult
	Recent       []model.RecentSummaryEntry
	Copied       bool
	VideoID      string
	ThumbnailURL string
}

// Stats mirrors the dashboard counters shown above the panel
type Stats struct {
	RecentCount int
	Confidence  float64
	WordCount   int
}

// Panel tracks a single summarize request at a time. Submit blocks the
// calling goroutine until the backend call settles; other goroutines may
// keep editing the input meanwhile.
type Panel struct {
	backend   Summarizer
	clipboard Clipboard
	now       func() time.Time
	copiedFor time.Duration

	mu        sync.Mutex
	input     string
	videoID   string
	state     State
	err       string
	result    *model.SummaryResult
	recent    *RecentList
	copied    bool
	copyGen   int
	copyTimer *time.Timer
}

type Option func(*Panel)

// WithClock overrides the time source used for recent entries
func WithClock(now func() time.Time) Option {
	return func(p *Panel) {
		p.now = now
	}
}

// WithCopiedDuration overrides how long the copied indicator stays on
func WithCopiedDuration(d time.Duration) Option {
	return func(p *Panel) {
		p.copiedFor = d
	}
}

func NewPanel(backend Summarizer, clipboard Clipboard, opts ...Option) *Panel {
	p := &Panel{
		backend:   backend,
		clipboard: clipboard,
		now:       time.Now,
		copiedFor: CopiedDuration,
		recent:    NewRecentList(MaxRecent),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetInput replaces the URL being edited. It clears any displayed error
// but never cancels an in-flight request.
func (p *Panel) SetInput(input string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.input = input
	p.videoID = ExtractVideoID(input)
	p.err = ""
	if p.state == StateFailed {
		p.state = StateIdle
	}
}

// CanSubmit reports whether the submit control is enabled
func (p *Panel) CanSubmit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state != StateLoading && strings.TrimSpace(p.input) != ""
}

// Submit validates the input and, if valid, performs exactly one backend
// call. A Submit while another is loading does nothing.
func (p *Panel) Submit(ctx context.Context) Snapshot {
	p.mu.Lock()
	if p.state == StateLoading {
		defer p.mu.Unlock()
		return p.snapshotLocked()
	}

	if strings.TrimSpace(p.input) == "" {
		p.state = StateFailed
		p.err = ValidationMessage
		metrics.SummariesTotal.WithLabelValues(metrics.OutcomeValidation).Inc()
		defer p.mu.Unlock()
		return p.snapshotLocked()
	}

	url := p.input
	p.state = StateLoading
	p.err = ""
	p.result = nil
	p.mu.Unlock()

	resp, err := p.backend.Summarize(ctx, url)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		log.Printf("Error generating summary for %s: %v", url, err)
		metrics.SummariesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		p.state = StateFailed
		p.err = FailureMessage
		return p.snapshotLocked()
	}

	result := BuildResult(resp)
	now := p.now()
	p.result = &result
	p.state = StateSucceeded
	p.recent.Add(model.RecentSummaryEntry{
		URL:   url,
		Title: fmt.Sprintf("Video %d", now.UnixMilli()),
		Date:  now,
	})
	metrics.SummariesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return p.snapshotLocked()
}

// Copy writes the current summary to the clipboard. On success the copied
// indicator is raised for a short while; failures are only logged.
func (p *Panel) Copy(ctx context.Context) bool {
	p.mu.Lock()
	if p.result == nil {
		p.mu.Unlock()
		return false
	}
	text := p.result.Summary
	p.mu.Unlock()

	if err := p.clipboard.WriteText(ctx, text); err != nil {
		log.Printf("Failed to copy text: %v", err)
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.copied = true
	p.copyGen++
	gen := p.copyGen
	if p.copyTimer != nil {
		p.copyTimer.Stop()
	}
	p.copyTimer = time.AfterFunc(p.copiedFor, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.copyGen == gen {
			p.copied = false
		}
	})

	return true
}

// Snapshot returns a copy of the panel state
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshotLocked()
}

// Stats returns the counters, using the fallback confidence and word
// count while no result is shown
func (p *Panel) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := Stats{
		RecentCount: p.recent.Len(),
		Confidence:  FallbackConfidence,
		WordCount:   FallbackWordCount,
	}
	if p.result != nil {
		stats.Confidence = p.result.Confidence
		stats.WordCount = p.result.WordCount
	}
	return stats
}

// Close stops the copied indicator timer
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.copyTimer != nil {
		p.copyTimer.Stop()
	}
}

func (p *Panel) snapshotLocked() Snapshot {
	snap := Snapshot{
		Input:        p.input,
		State:        p.state,
		Error:        p.err,
		Recent:       p.recent.Entries(),
		Copied:       p.copied,
		VideoID:      p.videoID,
		ThumbnailURL: ThumbnailURL(p.videoID),
	}
	if p.result != nil {
		result := *p.result
		result.KeyPoints = cloneStrings(p.result.KeyPoints)
		result.Topics = cloneStrings(p.result.Topics)
		snap.Result = &result
	}
	return snap
}
