package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pep299/socialspy/internal/application"
	"github.com/pep299/socialspy/internal/config"
	"github.com/pep299/socialspy/internal/snapshot"
	"github.com/pep299/socialspy/internal/storage"
	"github.com/pep299/socialspy/internal/summarizer"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

// Storage keys used by the CLI
const (
	prefsSubredditKey = "prefs:subreddit"
	lastSummaryKey    = "summary:last"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		subreddit   = flag.String("subreddit", "", "Subreddit to list (remembered for later runs when STORAGE_BACKEND=gcs)")
		limit       = flag.String("limit", "", "Number of posts to fetch")
		after       = flag.String("after", "", "Pagination cursor from a previous page")
		summarize   = flag.String("summarize", "", "Summarize a single YouTube URL")
		copyResult  = flag.Bool("copy", false, "Copy the summary to the clipboard after -summarize")
		interactive = flag.Bool("interactive", false, "Start the interactive summarizer panel")
		sessionID   = flag.String("session", "", "Session id to resume, needs SESSION_BACKEND=redis (default: new session)")
		runSnapshot = flag.Bool("snapshot", false, "Take trending snapshots of the configured subreddits now")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("SocialSpy CLI\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("SocialSpy CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	ctx := context.Background()

	app, err := application.New(ctx)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	switch {
	case *runSnapshot:
		err = takeSnapshots(ctx, app.Snapshots)
	case *summarize != "" || *interactive:
		err = runPanel(ctx, app, *sessionID, *summarize, *copyResult, *interactive)
	default:
		err = listTrending(ctx, app, *subreddit, *limit, *after)
	}

	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func listTrending(ctx context.Context, app *application.Application, subreddit, limit, after string) error {
	if subreddit == "" {
		subreddit, _ = storage.Get[string](ctx, app.Durable.Store, prefsSubredditKey)
	} else {
		app.Durable.Set(ctx, prefsSubredditKey, subreddit)
		printHint(durableHint(app.Config))
	}

	query := app.TrendingService.Query(subreddit, limit, after)
	resp, err := app.TrendingService.Fetch(ctx, query)
	if err != nil {
		return err
	}

	printTrending(os.Stdout, query.Subreddit, resp)
	return nil
}

func runPanel(ctx context.Context, app *application.Application, sessionID, url string, copyResult, interactive bool) error {
	session, id, err := app.NewSession(ctx, sessionID)
	if err != nil {
		return err
	}
	defer session.Close()

	if interactive || sessionID != "" {
		printHint(sessionHint(app.Config))
	}

	panel := summarizer.NewPanel(app.Summarizer, summarizer.NewTerminalClipboard(os.Stdout))
	defer panel.Close()

	if interactive {
		fmt.Printf("Session: %s\n", id)
		return runREPL(ctx, panel, session, os.Stdin, os.Stdout)
	}

	panel.SetInput(url)
	snap := panel.Submit(ctx)
	printSnapshot(os.Stdout, snap)
	if snap.State != summarizer.StateSucceeded {
		return fmt.Errorf("summarize failed: %s", snap.Error)
	}

	saveLast(ctx, session, snap)
	if copyResult {
		panel.Copy(ctx)
	}
	return nil
}

func takeSnapshots(ctx context.Context, job *snapshot.Job) error {
	subreddits := job.Subreddits()
	succeeded := job.RunOnce(ctx)

	for _, subreddit := range subreddits {
		record, ok := job.Latest(ctx, subreddit)
		if !ok {
			fmt.Printf("r/%s: no snapshot\n", subreddit)
			continue
		}
		fmt.Printf("r/%s: %d items at %s\n", subreddit, len(record.Response.Items), record.TakenAt.Format("2006-01-02 15:04:05"))
	}

	if succeeded == 0 && len(subreddits) > 0 {
		return fmt.Errorf("all %d snapshots failed", len(subreddits))
	}
	return nil
}

// durableHint warns that the memory backend forgets preferences on exit
func durableHint(cfg *config.Config) string {
	if cfg.StorageBackend != "memory" {
		return ""
	}
	return "note: STORAGE_BACKEND=memory: the subreddit is remembered for this run only, set STORAGE_BACKEND=gcs to keep it"
}

// sessionHint warns that a memory session cannot be resumed later
func sessionHint(cfg *config.Config) string {
	if cfg.SessionBackend != "memory" {
		return ""
	}
	return "note: SESSION_BACKEND=memory: this session ends with the process, set SESSION_BACKEND=redis to resume it with -session"
}

func printHint(hint string) {
	if hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}
}
