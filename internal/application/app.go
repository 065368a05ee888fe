package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pep299/socialspy/internal/config"
	"github.com/pep299/socialspy/internal/reddit"
	"github.com/pep299/socialspy/internal/snapshot"
	"github.com/pep299/socialspy/internal/storage"
	"github.com/pep299/socialspy/internal/summarizer"
	"github.com/pep299/socialspy/internal/transport/handler"
	"github.com/pep299/socialspy/internal/trending"
)

// Application represents the application with all business logic components
type Application struct {
	Config          *config.Config
	TrendingService *trending.Service
	TrendingHandler *handler.Trending
	Summarizer      *summarizer.Client
	Durable         *storage.Durable
	Snapshots       *snapshot.Job
	SnapshotHandler *handler.Snapshot
	cleanup         func() error
}

// New creates a new application instance with all dependencies
func New(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig wires the application from an already loaded config
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Application, error) {
	durableBackend, err := newDurableBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating durable storage: %w", err)
	}
	durable := storage.NewDurable(durableBackend)

	trendingService := NewTrendingService(cfg)

	snapshots := snapshot.NewJob(trendingService, durable, cfg.SnapshotSubreddits)

	return &Application{
		Config:          cfg,
		TrendingService: trendingService,
		TrendingHandler: handler.NewTrending(trendingService),
		Summarizer:      summarizer.NewClient(cfg.SummarizerURL, cfg.SummarizerTimeout),
		Durable:         durable,
		Snapshots:       snapshots,
		SnapshotHandler: handler.NewSnapshot(snapshots),
		cleanup:         durable.Close,
	}, nil
}

// NewTrendingService builds the Reddit-backed trending service. It needs
// no storage, so the proxy entry point can use it on its own.
func NewTrendingService(cfg *config.Config) *trending.Service {
	redditClient := reddit.NewClient(cfg.RedditBaseURL, cfg.RedditUserAgent, cfg.UpstreamTimeout)
	return trending.NewService(redditClient, trending.Config{
		DefaultSubreddit: cfg.DefaultSubreddit,
		DefaultLimit:     cfg.DefaultLimit,
	})
}

// NewSession opens a session-scoped store. An empty id gets a fresh one.
func (a *Application) NewSession(ctx context.Context, id string) (*storage.Store, string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	switch a.Config.SessionBackend {
	case "redis":
		backend, err := storage.NewRedisBackend(ctx, a.Config.RedisAddr, a.Config.RedisDB, id, a.Config.SessionTTL)
		if err != nil {
			return nil, "", fmt.Errorf("creating redis session: %w", err)
		}
		return storage.NewSession(backend), id, nil
	default:
		return storage.NewSession(storage.NewMemoryBackend(a.Config.SessionTTL)), id, nil
	}
}

// Close cleans up application resources
func (a *Application) Close() error {
	if a.Snapshots != nil {
		a.Snapshots.Stop()
	}
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}

func newDurableBackend(ctx context.Context, cfg *config.Config) (storage.ClearableBackend, error) {
	switch cfg.StorageBackend {
	case "gcs":
		return storage.NewGCSBackend(ctx, cfg.StorageBucket, cfg.StoragePrefix)
	default:
		return storage.NewMemoryBackend(0), nil
	}
}
