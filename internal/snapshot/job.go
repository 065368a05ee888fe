package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pep299/socialspy/internal/metrics"
	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/reddit"
	"github.com/pep299/socialspy/internal/storage"
)

// Snapshot run statuses
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// ErrUnknownSubreddit is returned by Run for subreddits outside the
// configured list
var ErrUnknownSubreddit = errors.New("subreddit is not configured for snapshots")

// Source is the trending service a snapshot is taken from
type Source interface {
	Query(subreddit, limit, after string) reddit.Query
	Fetch(ctx context.Context, q reddit.Query) (*model.TrendingResponse, error)
}

// Record is what gets archived per subreddit
type Record struct {
	Subreddit string                  `json:"subreddit"`
	TakenAt   time.Time               `json:"takenAt"`
	Response  *model.TrendingResponse `json:"response"`
}

// Key returns the durable storage key for subreddit
func Key(subreddit string) string {
	return "snapshot:reddit:" + subreddit
}

// Job archives the first page of each configured subreddit on a cron schedule
type Job struct {
	source     Source
	store      *storage.Durable
	subreddits []string
	now        func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	running map[string]bool
}

func NewJob(source Source, store *storage.Durable, subreddits []string) *Job {
	return &Job{
		source:     source,
		store:      store,
		subreddits: append([]string(nil), subreddits...),
		now:        time.Now,
		running:    make(map[string]bool),
	}
}

// Start schedules one entry per subreddit. An empty schedule leaves the
// job disabled.
func (j *Job) Start(schedule string) error {
	if schedule == "" {
		log.Printf("Snapshot schedule not set, snapshots disabled")
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cron != nil {
		return fmt.Errorf("snapshot job already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New()

	for _, subreddit := range j.subreddits {
		subreddit := subreddit
		if _, err := c.AddFunc(schedule, func() {
			j.Run(ctx, subreddit)
		}); err != nil {
			cancel()
			return fmt.Errorf("scheduling snapshot for r/%s: %w", subreddit, err)
		}
		log.Printf("📅 Scheduled snapshot for r/%s with cron: %s", subreddit, schedule)
	}

	c.Start()
	j.cron = c
	j.cancel = cancel
	return nil
}

// Stop cancels in-flight runs and waits for them to return
func (j *Job) Stop() {
	j.mu.Lock()
	c, cancel := j.cron, j.cancel
	j.cron, j.cancel = nil, nil
	j.mu.Unlock()

	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()
}

// RunOnce snapshots every configured subreddit immediately and returns
// the number of successful runs
func (j *Job) RunOnce(ctx context.Context) int {
	succeeded := 0
	for _, subreddit := range j.subreddits {
		if j.Run(ctx, subreddit) == nil {
			succeeded++
		}
	}
	return succeeded
}

// Subreddits returns the configured subreddits
func (j *Job) Subreddits() []string {
	return append([]string(nil), j.subreddits...)
}

// Latest returns the archived snapshot for subreddit
func (j *Job) Latest(ctx context.Context, subreddit string) (Record, bool) {
	return storage.Get[Record](ctx, j.store.Store, Key(subreddit))
}

// Run snapshots a single configured subreddit. Overlapping runs for the
// same subreddit are skipped.
func (j *Job) Run(ctx context.Context, subreddit string) error {
	if !j.configured(subreddit) {
		return fmt.Errorf("r/%s: %w", subreddit, ErrUnknownSubreddit)
	}
	if !j.acquire(subreddit) {
		metrics.SnapshotsTotal.WithLabelValues(subreddit, StatusSkipped).Inc()
		return fmt.Errorf("snapshot for r/%s already running", subreddit)
	}
	defer j.release(subreddit)

	resp, err := j.source.Fetch(ctx, j.source.Query(subreddit, "", ""))
	if err != nil {
		log.Printf("❌ Snapshot failed for r/%s: %v", subreddit, err)
		metrics.SnapshotsTotal.WithLabelValues(subreddit, StatusFailed).Inc()
		return err
	}

	record := Record{Subreddit: subreddit, TakenAt: j.now().UTC(), Response: resp}
	if !j.store.Set(ctx, Key(subreddit), record) {
		metrics.SnapshotsTotal.WithLabelValues(subreddit, StatusFailed).Inc()
		return fmt.Errorf("storing snapshot for r/%s", subreddit)
	}

	log.Printf("✅ Snapshot stored for r/%s (%d items)", subreddit, len(resp.Items))
	metrics.SnapshotsTotal.WithLabelValues(subreddit, StatusSuccess).Inc()
	return nil
}

func (j *Job) configured(subreddit string) bool {
	for _, s := range j.subreddits {
		if s == subreddit {
			return true
		}
	}
	return false
}

func (j *Job) acquire(subreddit string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running[subreddit] {
		return false
	}
	j.running[subreddit] = true
	return true
}

func (j *Job) release(subreddit string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.running, subreddit)
}
